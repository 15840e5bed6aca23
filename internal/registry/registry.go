// Package registry holds the in-memory, insertion-ordered collection of assets.
package registry

import (
	"sync"

	"github.com/crucial707/asset-registry/internal/models"
	"github.com/pkg/errors"
)

var (
	// ErrDuplicateID is returned by Create when an asset with the same id exists.
	ErrDuplicateID = errors.New("an asset with this id already exists")
	// ErrNotFound is returned when no asset has the requested id.
	ErrNotFound = errors.New("asset not found")
)

// ========================
// REGISTRY STRUCT
// ========================

// Registry is safe for concurrent use. Lookups are linear scans in insertion order.
type Registry struct {
	mu     sync.RWMutex
	assets []models.Asset
}

func New() *Registry {
	return &Registry{assets: []models.Asset{}}
}

// ========================
// LIST ASSETS
// ========================

// List returns copies of all assets in insertion order. Never nil.
func (r *Registry) List() []models.Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a.Clone())
	}
	return out
}

// Len returns the number of stored assets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.assets)
}

// ========================
// CREATE ASSET
// ========================

func (r *Registry) Create(asset models.Asset) (models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(asset.ID) >= 0 {
		return models.Asset{}, errors.Wrapf(ErrDuplicateID, "id %d", asset.ID)
	}

	r.assets = append(r.assets, asset.Clone())
	return asset, nil
}

// ========================
// GET ASSET BY ID
// ========================

func (r *Registry) Get(id int) (models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Asset{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return r.assets[i].Clone(), nil
}

// ========================
// REPLACE ASSET BY ID
// ========================

// Replace overwrites the asset stored under id, keeping its position.
// The replacement's own ID is stored as given, even when it differs from id.
func (r *Registry) Replace(id int, asset models.Asset) (models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Asset{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	r.assets[i] = asset.Clone()
	return asset, nil
}

// ========================
// DELETE ASSET BY ID
// ========================

func (r *Registry) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "id %d", id)
	}
	r.assets = append(r.assets[:i], r.assets[i+1:]...)
	return nil
}

// indexOf returns the position of the first asset with id, or -1. Caller holds mu.
func (r *Registry) indexOf(id int) int {
	for i := range r.assets {
		if r.assets[i].ID == id {
			return i
		}
	}
	return -1
}

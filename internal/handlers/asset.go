package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/asset-registry/internal/metrics"
	"github.com/crucial707/asset-registry/internal/models"
	"github.com/crucial707/asset-registry/internal/registry"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Response messages.
const (
	MsgDuplicateID = "an asset with this id already exists"
	MsgNotFound    = "asset not found"
	MsgInvalidID   = "invalid asset id"
	MsgDeleted     = "asset deleted"
)

type AssetHandler struct {
	Registry *registry.Registry
	// Audit is optional; when nil, mutations are not recorded.
	Audit  *registry.AuditLog
	Logger *zap.Logger
}

func (h *AssetHandler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// mutated records a successful mutation in the audit log and the size gauge.
func (h *AssetHandler) mutated(r *http.Request, action string, id int) {
	reqID := chimw.GetReqID(r.Context())
	if h.Audit != nil {
		h.Audit.Record(action, id, reqID)
	}
	metrics.SetAssetsStored(h.Registry.Len())
	h.log().Debug("asset "+action,
		zap.Int("asset_id", id),
		zap.String("request_id", reqID))
}

// assetID parses the {id} path parameter. On failure it writes a 422 and returns false.
func assetID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, MsgInvalidID, http.StatusUnprocessableEntity)
		return 0, false
	}
	return id, true
}

//
// ==========================
// List Assets
// ==========================
//

func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets := h.Registry.List()
	metrics.RecordOperation("list", metrics.OutcomeOK)
	JSON(w, http.StatusOK, assets)
}

//
// ==========================
// Create Asset
// ==========================
//

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	input, berr := decodeAsset(r)
	if berr != nil {
		metrics.RecordOperation("create", metrics.OutcomeInvalid)
		berr.write(w)
		return
	}

	asset, err := h.Registry.Create(input)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateID) {
			metrics.RecordOperation("create", metrics.OutcomeDuplicate)
			JSONError(w, MsgDuplicateID, http.StatusBadRequest)
			return
		}
		h.log().Error("create asset", zap.Error(err))
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordOperation("create", metrics.OutcomeOK)
	h.mutated(r, models.ActionCreate, asset.ID)
	JSON(w, http.StatusOK, asset)
}

//
// ==========================
// Get Asset By ID
// ==========================
//

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		metrics.RecordOperation("get", metrics.OutcomeInvalid)
		return
	}

	asset, err := h.Registry.Get(id)
	if err != nil {
		h.notFoundOrInternal(w, "get", err)
		return
	}

	metrics.RecordOperation("get", metrics.OutcomeOK)
	JSON(w, http.StatusOK, asset)
}

//
// ==========================
// Update Asset
// ==========================
//

// UpdateAsset replaces the whole asset at {id}. The body's own id is stored as given.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		metrics.RecordOperation("replace", metrics.OutcomeInvalid)
		return
	}

	input, berr := decodeAsset(r)
	if berr != nil {
		metrics.RecordOperation("replace", metrics.OutcomeInvalid)
		berr.write(w)
		return
	}

	asset, err := h.Registry.Replace(id, input)
	if err != nil {
		h.notFoundOrInternal(w, "replace", err)
		return
	}

	metrics.RecordOperation("replace", metrics.OutcomeOK)
	h.mutated(r, models.ActionReplace, id)
	JSON(w, http.StatusOK, asset)
}

//
// ==========================
// Delete Asset
// ==========================
//

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		metrics.RecordOperation("delete", metrics.OutcomeInvalid)
		return
	}

	if err := h.Registry.Delete(id); err != nil {
		h.notFoundOrInternal(w, "delete", err)
		return
	}

	metrics.RecordOperation("delete", metrics.OutcomeOK)
	h.mutated(r, models.ActionDelete, id)
	JSON(w, http.StatusOK, map[string]string{"detail": MsgDeleted})
}

func (h *AssetHandler) notFoundOrInternal(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		metrics.RecordOperation(op, metrics.OutcomeNotFound)
		JSONError(w, MsgNotFound, http.StatusNotFound)
		return
	}
	h.log().Error(op+" asset", zap.Error(err))
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}

package registry

import (
	"sync"
	"time"

	"github.com/crucial707/asset-registry/internal/models"
)

// DefaultAuditCapacity is the number of entries kept when none is configured.
const DefaultAuditCapacity = 1000

// AuditLog keeps the most recent successful mutations in memory.
type AuditLog struct {
	mu       sync.Mutex
	entries  []models.AuditEntry
	capacity int
	seq      int
	now      func() time.Time
}

// NewAuditLog returns an AuditLog holding at most capacity entries.
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{capacity: capacity, now: time.Now}
}

// Record appends an entry, evicting the oldest once capacity is reached.
func (l *AuditLog) Record(action string, assetID int, requestID string) models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	e := models.AuditEntry{
		Seq:       l.seq,
		Action:    action,
		AssetID:   assetID,
		RequestID: requestID,
		CreatedAt: l.now().UTC(),
	}
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns the retained entries, newest first.
func (l *AuditLog) Entries() []models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AuditEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

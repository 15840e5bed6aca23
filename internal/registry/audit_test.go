package registry

import (
	"testing"
	"time"

	"github.com/crucial707/asset-registry/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog_NewestFirst(t *testing.T) {
	l := NewAuditLog(10)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.Record(models.ActionCreate, 1, "req-1")
	l.Record(models.ActionReplace, 1, "req-2")
	l.Record(models.ActionDelete, 1, "")

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].Seq)
	assert.Equal(t, models.ActionDelete, entries[0].Action)
	assert.Equal(t, models.ActionCreate, entries[2].Action)
	assert.Equal(t, "req-1", entries[2].RequestID)
	assert.Equal(t, fixed, entries[1].CreatedAt)
}

func TestAuditLog_Capacity(t *testing.T) {
	l := NewAuditLog(2)
	for id := 1; id <= 5; id++ {
		l.Record(models.ActionCreate, id, "")
	}

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 5, entries[0].AssetID)
	assert.Equal(t, 4, entries[1].AssetID)
	assert.Equal(t, 5, entries[0].Seq)
}

func TestAuditLog_DefaultCapacity(t *testing.T) {
	l := NewAuditLog(0)
	assert.Equal(t, DefaultAuditCapacity, l.capacity)
	assert.NotNil(t, l.Entries())
}

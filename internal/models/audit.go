package models

import "time"

// Audit actions.
const (
	ActionCreate  = "create"
	ActionReplace = "replace"
	ActionDelete  = "delete"
)

// AuditEntry records one successful mutation of the registry.
type AuditEntry struct {
	Seq       int       `json:"seq"`
	Action    string    `json:"action"` // create, replace, delete
	AssetID   int       `json:"asset_id"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

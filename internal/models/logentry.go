package models

import "time"

// Log levels and actions recorded by the audit middleware.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	ActionCreate = "CREATE"
	ActionRead   = "READ"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
)

// LogEntry is one audit log row. Entries are append-only.
type LogEntry struct {
	ID         int       `json:"id"`
	Level      string    `json:"level"`
	Actor      string    `json:"actor"` // username or "anonymous"
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"` // JSON blob
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "time"

const (
	TicketStatusOpen       = "OPEN"
	TicketStatusInProgress = "IN_PROGRESS"
	TicketStatusResolved   = "RESOLVED"
	TicketStatusClosed     = "CLOSED"
	TicketStatusStale      = "STALE"

	TicketPriorityLow    = "LOW"
	TicketPriorityMedium = "MEDIUM"
	TicketPriorityHigh   = "HIGH"

	TicketTypeIssueReport = "ISSUE_REPORT"
	TicketTypeRequest     = "REQUEST"
	TicketTypeMaintenance = "MAINTENANCE"
)

type Ticket struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Type        string    `json:"type"`
	RoomID      *int      `json:"room_id,omitempty"`
	CreatedBy   *int      `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

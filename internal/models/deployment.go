package models

import "time"

// DeploymentRecord tracks stock moved from storage into a room.
type DeploymentRecord struct {
	ID            int       `json:"id"`
	StorageItemID int       `json:"storage_item_id"`
	RoomID        int       `json:"room_id"`
	Quantity      int       `json:"quantity"`
	DeployedBy    *int      `json:"deployed_by,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	DeployedAt    time.Time `json:"deployed_at"`
}

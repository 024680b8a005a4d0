package models

import "time"

// StorageItem is stock held in the IT storage room (spares, consumables).
type StorageItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type Floor struct {
	ID         int       `json:"id"`
	BuildingID int       `json:"building_id"`
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "time"

type Room struct {
	ID        int       `json:"id"`
	FloorID   int       `json:"floor_id"`
	Number    string    `json:"number"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// Schedule is a recurring class session assigned to a room.
type Schedule struct {
	ID        int       `json:"id"`
	RoomID    int       `json:"room_id"`
	Subject   string    `json:"subject"`
	Section   string    `json:"section"`
	Teacher   string    `json:"teacher"`
	DayOfWeek int       `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime string    `json:"start_time"`  // "HH:MM"
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// ScheduleWithRoom joins the room context needed by the attendance flow.
type ScheduleWithRoom struct {
	Schedule
	RoomNumber string `json:"room_number"`
	RoomName   string `json:"room_name"`
}

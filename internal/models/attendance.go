package models

import "time"

// Attendance is one equipment-check submission for a scheduled class.
// The ID is a generated UUID, not a serial.
type Attendance struct {
	ID          string    `json:"id"`
	ScheduleID  int       `json:"schedule_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Section     string    `json:"section"`
	YearLevel   string    `json:"year_level"`
	Subject     string    `json:"subject"`
	Description string    `json:"description,omitempty"`
	SystemUnit  bool      `json:"system_unit"`
	Keyboard    bool      `json:"keyboard"`
	Mouse       bool      `json:"mouse"`
	Internet    bool      `json:"internet"`
	UPS         bool      `json:"ups"`
	CreatedAt   time.Time `json:"created_at"`
}

// AllEquipmentPresent is the escalation predicate: true only when every flag
// is set.
func (a Attendance) AllEquipmentPresent() bool {
	return a.SystemUnit && a.Keyboard && a.Mouse && a.Internet && a.UPS
}

// MissingEquipment returns the display names of absent items in a fixed
// order, e.g. ["System Unit", "Mouse"].
func (a Attendance) MissingEquipment() []string {
	var missing []string
	if !a.SystemUnit {
		missing = append(missing, "System Unit")
	}
	if !a.Keyboard {
		missing = append(missing, "Keyboard")
	}
	if !a.Mouse {
		missing = append(missing, "Mouse")
	}
	if !a.Internet {
		missing = append(missing, "Internet")
	}
	if !a.UPS {
		missing = append(missing, "UPS")
	}
	return missing
}

// AttendanceWithContext joins schedule and room info for the read path.
type AttendanceWithContext struct {
	Attendance
	RoomNumber      string `json:"room_number"`
	ScheduleSubject string `json:"schedule_subject"`
	Teacher         string `json:"teacher"`
}

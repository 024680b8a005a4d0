package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campuslab/equiptrack/internal/metrics"
	"github.com/campuslab/equiptrack/internal/middleware"
	"github.com/campuslab/equiptrack/internal/models"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AttendanceHandler records equipment-check submissions and escalates
// missing equipment to tickets.
type AttendanceHandler struct {
	Attendance *repo.AttendanceRepo
	Schedules  *repo.ScheduleRepo
	Tickets    *repo.TicketRepo
}

type attendanceInput struct {
	ScheduleID  int    `json:"scheduleId" validate:"required,gt=0"`
	FirstName   string `json:"firstName" validate:"required,max=255"`
	LastName    string `json:"lastName" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Section     string `json:"section" validate:"required,max=64"`
	YearLevel   string `json:"yearLevel" validate:"required,max=32"`
	Subject     string `json:"subject" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`

	// Equipment flags are pointers so a missing field fails validation
	// instead of silently reading as false.
	SystemUnit *bool `json:"systemUnit" validate:"required"`
	Keyboard   *bool `json:"keyboard" validate:"required"`
	Mouse      *bool `json:"mouse" validate:"required"`
	Internet   *bool `json:"internet" validate:"required"`
	UPS        *bool `json:"ups" validate:"required"`

	CreateTicket bool `json:"createTicket"`
}

// Submit records one attendance submission. The attendance row is written
// unconditionally once the schedule resolves; ticket escalation happens
// after, and its failure never fails the submission.
func (h *AttendanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input attendanceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	sched, err := h.Schedules.GetWithRoom(r.Context(), input.ScheduleID)
	if err != nil {
		dbError(w, err)
		return
	}
	if sched == nil {
		JSONError(w, "Schedule not found", http.StatusNotFound)
		return
	}

	rec, err := h.Attendance.Create(r.Context(), models.Attendance{
		ID:          uuid.NewString(),
		ScheduleID:  input.ScheduleID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Section:     input.Section,
		YearLevel:   input.YearLevel,
		Subject:     input.Subject,
		Description: input.Description,
		SystemUnit:  *input.SystemUnit,
		Keyboard:    *input.Keyboard,
		Mouse:       *input.Mouse,
		Internet:    *input.Internet,
		UPS:         *input.UPS,
	})
	if err != nil {
		dbError(w, err)
		return
	}

	metrics.RecordAttendance(rec.AllEquipmentPresent())

	// Escalate only for authenticated callers who asked for it. Anonymous
	// submitters skip the ticket silently; the submission still succeeds.
	if !rec.AllEquipmentPresent() && input.CreateTicket {
		if p, authenticated := middleware.PrincipalFrom(r.Context()); authenticated {
			if err := h.escalate(r.Context(), rec, sched, p.ID); err != nil {
				slog.Error("attendance escalation failed",
					"attendance_id", rec.ID,
					"schedule_id", rec.ScheduleID,
					"error", err)
			}
		}
	}

	JSONData(w, http.StatusCreated, rec)
}

// escalate opens an ISSUE_REPORT ticket for the missing equipment,
// attributed to the authenticated caller. The submitted name and email stay
// in the ticket body as display fields.
func (h *AttendanceHandler) escalate(ctx context.Context, rec *models.Attendance, sched *models.ScheduleWithRoom, createdBy int) error {
	missing := rec.MissingEquipment()
	title := fmt.Sprintf("Missing equipment: %s (reported by %s %s)",
		strings.Join(missing, ", "), rec.FirstName, rec.LastName)
	description := fmt.Sprintf(
		"Equipment issue reported during attendance submission.\n\n"+
			"Room: %s\nSubject: %s\nSection: %s\nYear Level: %s\n"+
			"Submitted by: %s %s <%s>\nMissing: %s\n\nNotes: %s",
		sched.RoomNumber, rec.Subject, rec.Section, rec.YearLevel,
		rec.FirstName, rec.LastName, rec.Email,
		strings.Join(missing, ", "), rec.Description)

	roomID := sched.RoomID
	_, err := h.Tickets.Create(ctx, models.Ticket{
		Title:       title,
		Description: description,
		Status:      models.TicketStatusOpen,
		Priority:    models.TicketPriorityMedium,
		Type:        models.TicketTypeIssueReport,
		RoomID:      &roomID,
		CreatedBy:   &createdBy,
	})
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	metrics.RecordTicketOpened("escalation")
	return nil
}

// ListAttendance returns paginated submissions joined with schedule/room
// context. Query: page, limit, startDate, endDate, scheduleId.
func (h *AttendanceHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)

	f := repo.AttendanceFilter{Limit: limit, Offset: (page - 1) * limit}
	if v := r.URL.Query().Get("scheduleId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.ScheduleID = n
		}
	}
	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			JSONError(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		f.StartDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			JSONError(w, "invalid endDate, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		// Inclusive range: extend to the end of the day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}

	list, err := h.Attendance.List(r.Context(), f)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Attendance.Count(r.Context(), f)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ScheduleHandler handles class schedule CRUD.
type ScheduleHandler struct {
	Repo *repo.ScheduleRepo
}

type scheduleInput struct {
	RoomID    int    `json:"roomId" validate:"required,gt=0"`
	Subject   string `json:"subject" validate:"required,max=255"`
	Section   string `json:"section" validate:"required,max=64"`
	Teacher   string `json:"teacher" validate:"max=255"`
	DayOfWeek int    `json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ListSchedules returns paginated schedules (query: page, limit).
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)

	list, err := h.Repo.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Repo.Count(r.Context())
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

// GetSchedule returns one schedule joined with its room.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.GetWithRoom(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if s == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, s)
}

// CreateSchedule creates a schedule.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	s, err := h.Repo.Create(r.Context(), input.RoomID, input.Subject, input.Section, input.Teacher, input.DayOfWeek, input.StartTime, input.EndTime)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, s)
}

// UpdateSchedule rewrites all schedule fields.
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	if err := h.Repo.Update(r.Context(), id, input.RoomID, input.Subject, input.Section, input.Teacher, input.DayOfWeek, input.StartTime, input.EndTime); err != nil {
		dbError(w, err)
		return
	}

	s, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if s == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, s)
}

// DeleteSchedule deletes a schedule.
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

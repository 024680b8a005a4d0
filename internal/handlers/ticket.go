package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/metrics"
	"github.com/campuslab/equiptrack/internal/middleware"
	"github.com/campuslab/equiptrack/internal/models"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// TicketHandler handles support ticket CRUD and status transitions.
type TicketHandler struct {
	Repo *repo.TicketRepo
}

type ticketInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Type        string `json:"type" validate:"omitempty,oneof=ISSUE_REPORT REQUEST MAINTENANCE"`
	RoomID      *int   `json:"roomId" validate:"omitempty,gt=0"`
}

// ListTickets returns paginated tickets (query: page, limit, status).
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)
	status := r.URL.Query().Get("status")

	list, err := h.Repo.List(r.Context(), status, limit, (page-1)*limit)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Repo.Count(r.Context(), status)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

// GetTicket returns one ticket by id.
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid ticket id", http.StatusBadRequest)
		return
	}

	t, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if t == nil {
		JSONError(w, "ticket not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, t)
}

// CreateTicket opens a ticket manually. New tickets always start OPEN.
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var input ticketInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}
	ticketType := input.Type
	if ticketType == "" {
		ticketType = models.TicketTypeIssueReport
	}

	ticket := models.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TicketStatusOpen,
		Priority:    priority,
		Type:        ticketType,
		RoomID:      input.RoomID,
	}
	if p, ok := middleware.PrincipalFrom(r.Context()); ok {
		ticket.CreatedBy = &p.ID
	}

	t, err := h.Repo.Create(r.Context(), ticket)
	if err != nil {
		dbError(w, err)
		return
	}
	metrics.RecordTicketOpened("manual")

	JSONData(w, http.StatusCreated, t)
}

// UpdateTicketStatus moves a ticket to a new status.
func (h *TicketHandler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid ticket id", http.StatusBadRequest)
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED STALE"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	t, err := h.Repo.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		dbError(w, err)
		return
	}
	if t == nil {
		JSONError(w, "ticket not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, t)
}

// DeleteTicket deletes a ticket.
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid ticket id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

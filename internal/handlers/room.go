package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// RoomHandler handles room CRUD.
type RoomHandler struct {
	Repo *repo.RoomRepo
}

// ListRooms returns paginated rooms (query: page, limit, floorId).
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)
	floorID := 0
	if v := r.URL.Query().Get("floorId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			floorID = n
		}
	}

	list, err := h.Repo.List(r.Context(), floorID, limit, (page-1)*limit)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Repo.Count(r.Context(), floorID)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

// GetRoom returns one room by id.
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid room id", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if m == nil {
		JSONError(w, "room not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, m)
}

// CreateRoom creates a room. Body: {"floorId", "number", "name", "capacity"}.
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FloorID  int    `json:"floorId" validate:"required,gt=0"`
		Number   string `json:"number" validate:"required,max=32"`
		Name     string `json:"name" validate:"max=255"`
		Capacity int    `json:"capacity" validate:"gte=0"`
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

	m, err := h.Repo.Create(r.Context(), input.FloorID, input.Number, input.Name, input.Capacity)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, m)
}

// UpdateRoom rewrites number, name, and capacity.
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid room id", http.StatusBadRequest)
		return
	}

	var input struct {
		Number   string `json:"number" validate:"required,max=32"`
		Name     string `json:"name" validate:"max=255"`
		Capacity int    `json:"capacity" validate:"gte=0"`
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

	m, err := h.Repo.Update(r.Context(), id, input.Number, input.Name, input.Capacity)
	if err != nil {
		dbError(w, err)
		return
	}
	if m == nil {
		JSONError(w, "room not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, m)
}

// DeleteRoom deletes a room.
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid room id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

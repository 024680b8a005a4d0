package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// FloorHandler handles floor CRUD.
type FloorHandler struct {
	Repo *repo.FloorRepo
}

// ListFloors returns paginated floors (query: page, limit, buildingId).
func (h *FloorHandler) ListFloors(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)
	buildingID := 0
	if v := r.URL.Query().Get("buildingId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			buildingID = n
		}
	}

	list, err := h.Repo.List(r.Context(), buildingID, limit, (page-1)*limit)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Repo.Count(r.Context(), buildingID)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

// GetFloor returns one floor by id.
func (h *FloorHandler) GetFloor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid floor id", http.StatusBadRequest)
		return
	}

	f, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if f == nil {
		JSONError(w, "floor not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, f)
}

// CreateFloor creates a floor. Body: {"buildingId", "name", "level"}.
func (h *FloorHandler) CreateFloor(w http.ResponseWriter, r *http.Request) {
	var input struct {
		BuildingID int    `json:"buildingId" validate:"required,gt=0"`
		Name       string `json:"name" validate:"required,max=255"`
		Level      int    `json:"level"`
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

	f, err := h.Repo.Create(r.Context(), input.BuildingID, input.Name, input.Level)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, f)
}

// UpdateFloor rewrites name and level.
func (h *FloorHandler) UpdateFloor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid floor id", http.StatusBadRequest)
		return
	}

	var input struct {
		Name  string `json:"name" validate:"required,max=255"`
		Level int    `json:"level"`
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

	f, err := h.Repo.Update(r.Context(), id, input.Name, input.Level)
	if err != nil {
		dbError(w, err)
		return
	}
	if f == nil {
		JSONError(w, "floor not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, f)
}

// DeleteFloor deletes a floor.
func (h *FloorHandler) DeleteFloor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid floor id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

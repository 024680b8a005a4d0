package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// BuildingHandler handles building CRUD.
type BuildingHandler struct {
	Repo *repo.BuildingRepo
}

type buildingInput struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Code    string `json:"code" validate:"required,max=32"`
	Address string `json:"address" validate:"max=500"`
}

// ListBuildings returns paginated buildings (query: page, limit).
func (h *BuildingHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
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

// GetBuilding returns one building by id.
func (h *BuildingHandler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid building id", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if b == nil {
		JSONError(w, "building not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, b)
}

// CreateBuilding creates a building. Body: {"name", "code", "address"}.
func (h *BuildingHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var input buildingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	b, err := h.Repo.Create(r.Context(), input.Name, input.Code, input.Address)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, b)
}

// UpdateBuilding rewrites a building's fields.
func (h *BuildingHandler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid building id", http.StatusBadRequest)
		return
	}

	var input buildingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	b, err := h.Repo.Update(r.Context(), id, input.Name, input.Code, input.Address)
	if err != nil {
		dbError(w, err)
		return
	}
	if b == nil {
		JSONError(w, "building not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, b)
}

// DeleteBuilding deletes a building.
func (h *BuildingHandler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid building id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

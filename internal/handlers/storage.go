package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// StorageHandler handles storage inventory CRUD.
type StorageHandler struct {
	Repo *repo.StorageRepo
}

type storageInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Category string `json:"category" validate:"max=64"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location" validate:"max=255"`
}

// ListStorage returns paginated storage items (query: page, limit, category).
func (h *StorageHandler) ListStorage(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)
	category := r.URL.Query().Get("category")

	list, err := h.Repo.List(r.Context(), category, limit, (page-1)*limit)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Repo.Count(r.Context(), category)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

// GetStorageItem returns one storage item by id.
func (h *StorageHandler) GetStorageItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid storage item id", http.StatusBadRequest)
		return
	}

	item, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if item == nil {
		JSONError(w, "storage item not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, item)
}

// CreateStorageItem creates a storage item.
func (h *StorageHandler) CreateStorageItem(w http.ResponseWriter, r *http.Request) {
	var input storageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	item, err := h.Repo.Create(r.Context(), input.Name, input.Category, input.Quantity, input.Location)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, item)
}

// UpdateStorageItem rewrites a storage item's fields.
func (h *StorageHandler) UpdateStorageItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid storage item id", http.StatusBadRequest)
		return
	}

	var input storageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	item, err := h.Repo.Update(r.Context(), id, input.Name, input.Category, input.Quantity, input.Location)
	if err != nil {
		dbError(w, err)
		return
	}
	if item == nil {
		JSONError(w, "storage item not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, item)
}

// DeleteStorageItem deletes a storage item.
func (h *StorageHandler) DeleteStorageItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid storage item id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/middleware"
	"github.com/campuslab/equiptrack/internal/models"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// DeploymentHandler records equipment moved from storage into rooms.
type DeploymentHandler struct {
	Repo    *repo.DeploymentRepo
	Storage *repo.StorageRepo
}

type deploymentInput struct {
	StorageItemID int    `json:"storageItemId" validate:"required,gt=0"`
	RoomID        int    `json:"roomId" validate:"required,gt=0"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	Notes         string `json:"notes" validate:"max=1000"`
}

// ListDeployments returns paginated deployment records (query: page, limit, roomId).
func (h *DeploymentHandler) ListDeployments(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 100)
	roomID := 0
	if v := r.URL.Query().Get("roomId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			roomID = n
		}
	}

	list, err := h.Repo.List(r.Context(), roomID, limit, (page-1)*limit)
	if err != nil {
		dbError(w, err)
		return
	}
	total, err := h.Repo.Count(r.Context(), roomID)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, list, NewPagination(page, limit, total))
}

// GetDeployment returns one deployment record by id.
func (h *DeploymentHandler) GetDeployment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid deployment id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if d == nil {
		JSONError(w, "deployment not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, d)
}

// CreateDeployment records a deployment and decrements the source storage
// item's quantity. The item must exist and hold enough stock.
func (h *DeploymentHandler) CreateDeployment(w http.ResponseWriter, r *http.Request) {
	var input deploymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	item, err := h.Storage.GetByID(r.Context(), input.StorageItemID)
	if err != nil {
		dbError(w, err)
		return
	}
	if item == nil {
		JSONError(w, "storage item not found", http.StatusNotFound)
		return
	}

	rec := models.DeploymentRecord{
		StorageItemID: input.StorageItemID,
		RoomID:        input.RoomID,
		Quantity:      input.Quantity,
		Notes:         input.Notes,
	}
	if p, ok := middleware.PrincipalFrom(r.Context()); ok {
		rec.DeployedBy = &p.ID
	}

	d, err := h.Repo.Deploy(r.Context(), rec)
	if errors.Is(err, repo.ErrInsufficientStock) {
		JSONError(w, "insufficient stock", http.StatusBadRequest)
		return
	}
	if err != nil {
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, d)
}

// DeleteDeployment removes a deployment record and returns the stock to
// storage.
func (h *DeploymentHandler) DeleteDeployment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid deployment id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.Remove(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if d == nil {
		JSONError(w, "deployment not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campuslab/equiptrack/internal/authz"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

// UserHandler handles user account CRUD. All routes require the admin-only
// user capabilities; the permission checks live in the route middleware.
type UserHandler struct {
	Repo *repo.UserRepo
}

type userInput struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Role      string `json:"role" validate:"required"`
}

// ListUsers returns paginated users (query: page, limit).
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
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

// GetUser returns one user by id.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	u, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		dbError(w, err)
		return
	}
	if u == nil {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, u)
}

// CreateUser creates a user account. Role aliases (technician, viewer) are
// normalized to the canonical role names.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input userInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	role := authz.ParseRole(input.Role)
	if !authz.Known(role) {
		JSONValidationError(w, "validation failed", map[string]string{"role": "unknown role"}, http.StatusBadRequest)
		return
	}

	u, err := h.Repo.Create(r.Context(), input.Username, input.Email, input.FirstName, input.LastName, input.Password, string(role))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			JSONError(w, "username or email already taken", http.StatusBadRequest)
			return
		}
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, u)
}

// UpdateUser rewrites a user's profile fields and role.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var input struct {
		Username  string `json:"username" validate:"required,min=3,max=64"`
		Email     string `json:"email" validate:"required,email"`
		FirstName string `json:"firstName" validate:"required,max=255"`
		LastName  string `json:"lastName" validate:"required,max=255"`
		Role      string `json:"role" validate:"required"`
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

	role := authz.ParseRole(input.Role)
	if !authz.Known(role) {
		JSONValidationError(w, "validation failed", map[string]string{"role": "unknown role"}, http.StatusBadRequest)
		return
	}

	u, err := h.Repo.Update(r.Context(), id, input.Username, input.Email, input.FirstName, input.LastName, string(role))
	if err != nil {
		dbError(w, err)
		return
	}
	if u == nil {
		JSONError(w, "user not found", http.StatusNotFound)
		return
	}

	JSONData(w, http.StatusOK, u)
}

// DeleteUser deletes a user account.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		dbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/campuslab/equiptrack/internal/middleware"
	"github.com/campuslab/equiptrack/internal/models"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues and records JWT sessions.
type AuthHandler struct {
	Users       *repo.UserRepo
	Logs        *repo.LogRepo
	Secret      []byte
	ExpireHours int
}

// Register creates a member account. Existing usernames are idempotent:
// the stored user is returned with 200 instead of a conflict.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username  string `json:"username" validate:"required,min=2,max=64"`
		Email     string `json:"email" validate:"required,email"`
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		Password  string `json:"password" validate:"required,min=8"`
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

	user, err := h.Users.Create(r.Context(), input.Username, input.Email, input.FirstName, input.LastName, input.Password, models.RoleMember)
	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			existing, getErr := h.Users.GetByUsername(r.Context(), input.Username)
			if getErr != nil || existing == nil {
				JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
				return
			}
			JSONData(w, http.StatusOK, existing)
			return
		}
		slog.Error("register failed", "username", input.Username, "error", err)
		dbError(w, err)
		return
	}

	JSONData(w, http.StatusCreated, user)
}

// Login verifies credentials and issues a JWT carrying user_id, username,
// and role. Successful logins are written to the audit log.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		dbError(w, err)
		return
	}
	if user == nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Accounts provisioned without a password (e.g. by ticket escalation)
	// are login-disabled until an admin sets one.
	if user.PasswordHash == "" {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	expire := time.Duration(h.ExpireHours) * time.Hour
	if h.ExpireHours <= 0 {
		expire = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(expire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	h.recordSession(r, user.Username, models.ActionLogin)

	JSONData(w, http.StatusOK, map[string]any{
		"token": signed,
		"user":  user,
	})
}

// Logout records a LOGOUT audit entry. Tokens are stateless; clients discard
// them locally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorLabel(r.Context())
	h.recordSession(r, actor, models.ActionLogout)
	JSONData(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) recordSession(r *http.Request, actor, action string) {
	if h.Logs == nil {
		return
	}
	err := h.Logs.Insert(r.Context(), models.LogEntry{
		Level:    models.LogLevelInfo,
		Actor:    actor,
		Action:   action,
		Resource: "user",
		Message:  action + " " + actor,
	})
	if err != nil {
		slog.Warn("session audit write failed", "action", action, "error", err)
	}
}

package handlers

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose
// internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional
// "fields" for field-level details. status is typically 400.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// validationFields flattens validator errors into field -> failed-rule pairs.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
	}
	return fields
}

// statusForDBError maps a database error to 503 when the database is
// unreachable, 500 otherwise.
func statusForDBError(err error) int {
	if errors.Is(err, driver.ErrBadConn) {
		return http.StatusServiceUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// dbError sends the right failure class for a repo error.
func dbError(w http.ResponseWriter, err error) {
	status := statusForDBError(err)
	msg := ErrMessageInternal
	if status == http.StatusServiceUnavailable {
		msg = "database unavailable"
	}
	JSONError(w, msg, status)
}

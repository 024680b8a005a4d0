package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/campuslab/equiptrack/internal/authz"
)

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RequireAuth rejects requests with no resolved principal. Use after Identity
// on routes that explicitly need a caller (e.g. user listing).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			writeJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability enforces the permission table for a route. Anonymous
// callers get 401; authenticated callers whose role lacks the capability
// get 403. Anonymous requests are checked as guest first, so guest-granted
// routes stay open.
func RequireCapability(cap authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, authenticated := PrincipalFrom(r.Context())
			if !authenticated {
				if authz.Can(authz.RoleGuest, cap) {
					next.ServeHTTP(w, r)
					return
				}
				writeJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if !authz.Can(p.Role, cap) {
				writeJSONError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

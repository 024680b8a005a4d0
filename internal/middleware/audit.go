package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campuslab/equiptrack/internal/models"
	"github.com/campuslab/equiptrack/internal/repo"
)

// resourceByPathSegment maps the path segment after /api to a resource kind,
// used when a route does not name its kind explicitly.
var resourceByPathSegment = map[string]string{
	"buildings":   "building",
	"floors":      "floor",
	"rooms":       "room",
	"users":       "user",
	"schedules":   "schedule",
	"tickets":     "ticket",
	"attendance":  "attendance",
	"storage":     "storage",
	"deployments": "deployment",
	"logs":        "log",
}

// actionForMethod maps the HTTP verb to an audit action. Unknown methods
// count as READ.
func actionForMethod(method string) string {
	switch method {
	case http.MethodPost:
		return models.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return models.ActionUpdate
	case http.MethodDelete:
		return models.ActionDelete
	default:
		return models.ActionRead
	}
}

// auditWriter captures the response status for the post-invocation entry.
type auditWriter struct {
	http.ResponseWriter
	status int
}

func (w *auditWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Audit wraps a handler with audit logging: one entry before invocation and
// one after, both attributed to the resolved principal (or "anonymous").
// resource names the kind explicitly; when empty it is inferred from the
// path, and requests whose kind cannot be determined pass through unlogged.
//
// Logging is best effort. A failed insert is reported via slog and otherwise
// ignored; the wrapper never changes the handler's response. Panics are
// logged as error entries and re-raised unchanged.
func Audit(logs *repo.LogRepo, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kind := resource
			segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
			if kind == "" {
				if len(segments) >= 2 && segments[0] == "api" {
					kind = resourceByPathSegment[segments[1]]
				}
			}
			if kind == "" {
				next.ServeHTTP(w, r)
				return
			}

			resourceID := ""
			if len(segments) >= 3 {
				resourceID = segments[2]
			}

			actor := ActorLabel(r.Context())
			action := actionForMethod(r.Method)
			details := encodeDetails(map[string]string{
				"resource_id": resourceID,
				"user_agent":  r.UserAgent(),
				"referer":     r.Referer(),
			})

			insert := func(e models.LogEntry) {
				if err := logs.Insert(r.Context(), e); err != nil {
					slog.Warn("audit log write failed",
						"resource", kind,
						"action", action,
						"error", err)
				}
			}

			insert(models.LogEntry{
				Level:      models.LogLevelDebug,
				Actor:      actor,
				Action:     action,
				Resource:   kind,
				ResourceID: resourceID,
				Message:    r.Method + " " + r.URL.Path,
				Details:    details,
			})

			defer func() {
				if rec := recover(); rec != nil {
					insert(models.LogEntry{
						Level:      models.LogLevelError,
						Actor:      actor,
						Action:     action,
						Resource:   kind,
						ResourceID: resourceID,
						Message:    fmt.Sprintf("%s %s panicked: %v", r.Method, r.URL.Path, rec),
						Details:    details,
					})
					panic(rec)
				}
			}()

			wrap := &auditWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrap, r)

			level := models.LogLevelInfo
			if wrap.status < 200 || wrap.status > 299 {
				level = models.LogLevelError
			}
			insert(models.LogEntry{
				Level:      level,
				Actor:      actor,
				Action:     action,
				Resource:   kind,
				ResourceID: resourceID,
				Message:    fmt.Sprintf("%s %s -> %d", r.Method, r.URL.Path, wrap.status),
				Details:    details,
			})
		})
	}
}

func encodeDetails(m map[string]string) string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

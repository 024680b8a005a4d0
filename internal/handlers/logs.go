package handlers

import (
	"net/http"

	"github.com/campuslab/equiptrack/internal/repo"
)

// LogHandler exposes the audit log read API.
type LogHandler struct {
	Repo *repo.LogRepo
}

// ListLogs returns paginated audit log entries. Query: page, limit, level,
// action, resource, user, search, sortBy, sortOrder. Unknown sort columns
// fall back to created_at inside the repo.
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 200)
	q := r.URL.Query()

	f := repo.LogFilter{
		Level:     q.Get("level"),
		Action:    q.Get("action"),
		Resource:  q.Get("resource"),
		Actor:     q.Get("user"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	entries, total, err := h.Repo.List(r.Context(), f)
	if err != nil {
		dbError(w, err)
		return
	}

	JSONPage(w, entries, NewPagination(page, limit, total))
}

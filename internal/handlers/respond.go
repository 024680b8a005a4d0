package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
)

// Pagination describes the page window returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes totalPages = ceil(total/limit). A page beyond the
// last yields an empty data array, never an error.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// JSONData writes a success envelope: {"success":true,"data":...}.
func JSONData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

// JSONPage writes a paginated success envelope. data should already be the
// requested page; an empty page encodes as [] rather than null.
func JSONPage(w http.ResponseWriter, data any, p Pagination) {
	// Nil slices (an empty page) encode as [] rather than null.
	if v := reflect.ValueOf(data); !v.IsValid() || (v.Kind() == reflect.Slice && v.IsNil()) {
		data = []any{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data, "pagination": p})
}

// pageParams parses page and limit query parameters with defaults page=1,
// limit=10 (capped at maxLimit).
func pageParams(r *http.Request, maxLimit int) (page, limit int) {
	page, limit = 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxLimit {
			limit = n
		}
	}
	return page, limit
}

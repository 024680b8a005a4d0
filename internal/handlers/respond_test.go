package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit, total int
		wantPages          int
	}{
		{1, 10, 0, 0},
		{1, 10, 1, 1},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{2, 5, 12, 3},
		{1, 0, 5, 0},
	}
	for _, c := range cases {
		got := NewPagination(c.page, c.limit, c.total)
		if got.TotalPages != c.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).TotalPages = %d, want %d",
				c.page, c.limit, c.total, got.TotalPages, c.wantPages)
		}
	}
}

func TestJSONPage_NilSliceEncodesAsArray(t *testing.T) {
	var entries []int
	rec := httptest.NewRecorder()
	JSONPage(rec, entries, NewPagination(1, 10, 0))

	var resp struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Errorf("expected success with empty array, body %s", rec.Body.String())
	}
}

func TestPageParams(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=3&limit=50", nil)
	page, limit := pageParams(req, 100)
	if page != 3 || limit != 50 {
		t.Errorf("got page=%d limit=%d", page, limit)
	}

	req = httptest.NewRequest("GET", "/?page=-1&limit=9999", nil)
	page, limit = pageParams(req, 100)
	if page != 1 || limit != 10 {
		t.Errorf("invalid params should fall back to defaults, got page=%d limit=%d", page, limit)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/repo"
)

func TestListLogs_FiltersAndPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM logs`).
		WithArgs("error", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT id, level, actor`).
		WithArgs("error", "alice", 5, 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "level", "actor", "action", "resource", "resource_id", "message", "details", "created_at"}).
			AddRow(9, "error", "alice", "DELETE", "room", "5", "DELETE /api/rooms/5 -> 503", "{}", time.Now()))

	h := &LogHandler{Repo: repo.NewLogRepo(db)}
	req := httptest.NewRequest(http.MethodGet, "/api/logs?level=error&user=alice&limit=5&page=2", nil)
	rec := httptest.NewRecorder()
	h.ListLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success    bool              `json:"success"`
		Data       []json.RawMessage `json:"data"`
		Pagination Pagination        `json:"pagination"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("data: got %d entries, want 1", len(resp.Data))
	}
	want := Pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3}
	if resp.Pagination != want {
		t.Errorf("pagination: got %+v, want %+v", resp.Pagination, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListLogs_EmptyPageIsArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM logs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, level, actor`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "level", "actor", "action", "resource", "resource_id", "message", "details", "created_at"}))

	h := &LogHandler{Repo: repo.NewLogRepo(db)}
	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	h.ListLogs(rec, req)

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data == nil {
		t.Error("data should encode as [], not null")
	}
}

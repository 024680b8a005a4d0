package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/models"
)

func TestLogRepo_List_LevelFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM logs WHERE level = \$1`).
		WithArgs("error").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT id, level, actor, action, resource`).
		WithArgs("error", 5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "level", "actor", "action", "resource", "resource_id", "message", "details", "created_at"}).
			AddRow(6, "error", "anonymous", "CREATE", "ticket", "", "POST /api/tickets -> 500", "{}", now).
			AddRow(7, "error", "alice", "DELETE", "room", "3", "DELETE /api/rooms/3 -> 500", "{}", now))

	logs := NewLogRepo(db)
	entries, total, err := logs.List(context.Background(), LogFilter{Level: "error", Limit: 5, Offset: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 7 {
		t.Errorf("total: got %d, want 7", total)
	}
	if len(entries) != 2 || entries[0].Level != "error" || entries[1].Actor != "alice" {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLogRepo_List_SortWhitelist(t *testing.T) {
	f := LogFilter{SortBy: "details; DROP TABLE logs", SortOrder: "asc"}
	if got := f.orderBy(); got != " ORDER BY created_at ASC" {
		t.Errorf("orderBy fell outside whitelist: %q", got)
	}
	f = LogFilter{SortBy: "level"}
	if got := f.orderBy(); got != " ORDER BY level DESC" {
		t.Errorf("orderBy: %q", got)
	}
}

func TestLogRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs("info", "bob", "READ", "building", "", "GET /api/buildings", "{}").
		WillReturnResult(sqlmock.NewResult(1, 1))

	logs := NewLogRepo(db)
	err = logs.Insert(context.Background(), models.LogEntry{
		Level: "info", Actor: "bob", Action: "READ", Resource: "building",
		Message: "GET /api/buildings", Details: "{}",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLogRepo_PurgeOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cutoff := time.Now().AddDate(0, 0, -90)
	mock.ExpectExec(`DELETE FROM logs WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	logs := NewLogRepo(db)
	n, err := logs.PurgeOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("PurgeOlderThan: %v", err)
	}
	if n != 42 {
		t.Errorf("purged: got %d, want 42", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

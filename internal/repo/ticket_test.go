package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/models"
)

func TestTicketRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	roomID := 7
	createdBy := 2
	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs("Missing equipment: Mouse (reported by A B)", "desc", "OPEN", "MEDIUM", "ISSUE_REPORT", 7, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "status", "priority", "type", "room_id", "created_by", "created_at", "updated_at"}).
			AddRow(1, "Missing equipment: Mouse (reported by A B)", "desc", "OPEN", "MEDIUM", "ISSUE_REPORT", 7, 2, now, now))

	tickets := NewTicketRepo(db)
	out, err := tickets.Create(context.Background(), models.Ticket{
		Title: "Missing equipment: Mouse (reported by A B)", Description: "desc",
		Status: models.TicketStatusOpen, Priority: models.TicketPriorityMedium,
		Type: models.TicketTypeIssueReport, RoomID: &roomID, CreatedBy: &createdBy,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID != 1 || out.RoomID == nil || *out.RoomID != 7 {
		t.Errorf("unexpected ticket: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTicketRepo_MarkStaleOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cutoff := time.Now().Add(-72 * time.Hour)
	mock.ExpectExec(`UPDATE tickets`).
		WithArgs(models.TicketStatusStale, models.TicketStatusOpen, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	tickets := NewTicketRepo(db)
	n, err := tickets.MarkStaleOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("MarkStaleOlderThan: %v", err)
	}
	if n != 3 {
		t.Errorf("marked: got %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTicketRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, description`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "status", "priority", "type", "room_id", "created_by", "created_at", "updated_at"}))

	tickets := NewTicketRepo(db)
	out, err := tickets.GetByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil for missing ticket, got %+v", out)
	}
}

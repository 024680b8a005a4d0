package scheduler

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/repo"
)

func TestPurgeLogs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM logs`).WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 17))

	m := &Maintenance{Logs: repo.NewLogRepo(db), RetentionDays: 90}
	m.purgeLogs()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAgeTickets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE tickets`).
		WithArgs("STALE", "OPEN", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	m := &Maintenance{Tickets: repo.NewTicketRepo(db), StaleHours: 72}
	m.ageTickets()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestStartRegistersJobsAndStops(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	m := &Maintenance{
		Logs:          repo.NewLogRepo(db),
		Tickets:       repo.NewTicketRepo(db),
		RetentionDays: 90,
		StaleHours:    72,
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

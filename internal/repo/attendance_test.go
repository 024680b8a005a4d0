package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/models"
)

func TestAttendanceRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO attendance`).
		WithArgs("ab-1", 3, "A", "B", "a@b.com", "1A", "1", "Math", "",
			false, true, true, true, true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	attendance := NewAttendanceRepo(db)
	rec, err := attendance.Create(context.Background(), models.Attendance{
		ID: "ab-1", ScheduleID: 3, FirstName: "A", LastName: "B", Email: "a@b.com",
		Section: "1A", YearLevel: "1", Subject: "Math",
		SystemUnit: false, Keyboard: true, Mouse: true, Internet: true, UPS: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != "ab-1" || !rec.CreatedAt.Equal(now) {
		t.Errorf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAttendanceRepo_List_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`SELECT a.id, a.schedule_id`).
		WithArgs(3, start, end, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "schedule_id", "first_name", "last_name", "email", "section", "year_level", "subject",
			"description", "system_unit", "keyboard", "mouse", "internet", "ups", "created_at",
			"number", "subject", "teacher"}).
			AddRow("ab-1", 3, "A", "B", "a@b.com", "1A", "1", "Math",
				"", true, true, true, true, true, now, "101", "Math", "Mrs. Cruz"))

	attendance := NewAttendanceRepo(db)
	list, err := attendance.List(context.Background(), AttendanceFilter{
		ScheduleID: 3, StartDate: &start, EndDate: &end, Limit: 10, Offset: 0,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].RoomNumber != "101" || list[0].Teacher != "Mrs. Cruz" {
		t.Errorf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAttendanceRepo_Count_NoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	attendance := NewAttendanceRepo(db)
	n, err := attendance.Count(context.Background(), AttendanceFilter{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 25 {
		t.Errorf("count: got %d, want 25", n)
	}
}

package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campuslab/equiptrack/internal/models"
)

// AttendanceRepo persists attendance submissions.
type AttendanceRepo struct {
	DB *sql.DB
}

// NewAttendanceRepo returns a new AttendanceRepo.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{DB: db}
}

// Create inserts a submission. The caller supplies the generated id; the
// database stamps created_at.
func (r *AttendanceRepo) Create(ctx context.Context, a models.Attendance) (*models.Attendance, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO attendance (id, schedule_id, first_name, last_name, email, section, year_level, subject, description,
		                        system_unit, keyboard, mouse, internet, ups)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at`,
		a.ID, a.ScheduleID, a.FirstName, a.LastName, a.Email, a.Section, a.YearLevel, a.Subject, a.Description,
		a.SystemUnit, a.Keyboard, a.Mouse, a.Internet, a.UPS,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AttendanceFilter narrows the attendance read path. Zero values mean
// "no filter".
type AttendanceFilter struct {
	ScheduleID int
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

const attendanceJoin = `
	FROM attendance a
	JOIN schedules s ON s.id = a.schedule_id
	JOIN rooms rm ON rm.id = s.room_id`

func (f AttendanceFilter) where() (string, []any) {
	clause := ""
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		if clause == "" {
			clause = " WHERE "
		} else {
			clause += " AND "
		}
		clause += fmt.Sprintf(cond, len(args))
	}
	if f.ScheduleID > 0 {
		add("a.schedule_id = $%d", f.ScheduleID)
	}
	if f.StartDate != nil {
		add("a.created_at >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("a.created_at <= $%d", *f.EndDate)
	}
	return clause, args
}

// List returns submissions newest first, joined with schedule/room context.
func (r *AttendanceRepo) List(ctx context.Context, f AttendanceFilter) ([]models.AttendanceWithContext, error) {
	clause, args := f.where()
	query := `
		SELECT a.id, a.schedule_id, a.first_name, a.last_name, a.email, a.section, a.year_level, a.subject,
		       COALESCE(a.description,''), a.system_unit, a.keyboard, a.mouse, a.internet, a.ups, a.created_at,
		       rm.number, s.subject, s.teacher` + attendanceJoin + clause +
		fmt.Sprintf(` ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.AttendanceWithContext
	for rows.Next() {
		var a models.AttendanceWithContext
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.FirstName, &a.LastName, &a.Email, &a.Section, &a.YearLevel, &a.Subject,
			&a.Description, &a.SystemUnit, &a.Keyboard, &a.Mouse, &a.Internet, &a.UPS, &a.CreatedAt,
			&a.RoomNumber, &a.ScheduleSubject, &a.Teacher); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Count returns the number of submissions matching the filter.
func (r *AttendanceRepo) Count(ctx context.Context, f AttendanceFilter) (int, error) {
	clause, args := f.where()
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*)`+attendanceJoin+clause, args...).Scan(&n)
	return n, err
}

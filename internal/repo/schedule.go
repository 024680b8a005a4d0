package repo

import (
	"context"
	"database/sql"

	"github.com/campuslab/equiptrack/internal/models"
)

// ScheduleRepo persists class schedules.
type ScheduleRepo struct {
	DB *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{DB: db}
}

const scheduleColumns = `id, room_id, subject, section, teacher, day_of_week, start_time, end_time, created_at`

// Count returns the total number of schedules.
func (r *ScheduleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules`).Scan(&n)
	return n, err
}

// List returns schedules ordered by id with limit/offset.
func (r *ScheduleRepo) List(ctx context.Context, limit, offset int) ([]models.Schedule, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.RoomID, &s.Subject, &s.Section, &s.Teacher, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID returns one schedule, or nil when absent.
func (r *ScheduleRepo) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	s := &models.Schedule{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id,
	).Scan(&s.ID, &s.RoomID, &s.Subject, &s.Section, &s.Teacher, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetWithRoom returns one schedule joined with its room, or nil when the
// schedule (or its room) is absent. The attendance flow depends on the room
// being resolvable.
func (r *ScheduleRepo) GetWithRoom(ctx context.Context, id int) (*models.ScheduleWithRoom, error) {
	s := &models.ScheduleWithRoom{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT s.id, s.room_id, s.subject, s.section, s.teacher, s.day_of_week, s.start_time, s.end_time, s.created_at,
		       rm.number, rm.name
		FROM schedules s
		JOIN rooms rm ON rm.id = s.room_id
		WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.RoomID, &s.Subject, &s.Section, &s.Teacher, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt,
		&s.RoomNumber, &s.RoomName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new schedule and returns it with id set.
func (r *ScheduleRepo) Create(ctx context.Context, roomID int, subject, section, teacher string, dayOfWeek int, startTime, endTime string) (*models.Schedule, error) {
	s := &models.Schedule{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO schedules (room_id, subject, section, teacher, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+scheduleColumns,
		roomID, subject, section, teacher, dayOfWeek, startTime, endTime,
	).Scan(&s.ID, &s.RoomID, &s.Subject, &s.Section, &s.Teacher, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Update rewrites all mutable fields for the given id.
func (r *ScheduleRepo) Update(ctx context.Context, id, roomID int, subject, section, teacher string, dayOfWeek int, startTime, endTime string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE schedules
		SET room_id = $1, subject = $2, section = $3, teacher = $4, day_of_week = $5, start_time = $6, end_time = $7
		WHERE id = $8`,
		roomID, subject, section, teacher, dayOfWeek, startTime, endTime, id,
	)
	return err
}

// Delete removes a schedule by id.
func (r *ScheduleRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	return err
}

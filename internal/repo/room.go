package repo

import (
	"context"
	"database/sql"

	"github.com/campuslab/equiptrack/internal/models"
)

// RoomRepo persists rooms.
type RoomRepo struct {
	DB *sql.DB
}

// NewRoomRepo returns a new RoomRepo.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{DB: db}
}

// Create inserts a room and returns it with id set.
func (r *RoomRepo) Create(ctx context.Context, floorID int, number, name string, capacity int) (*models.Room, error) {
	m := &models.Room{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO rooms (floor_id, number, name, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, floor_id, number, name, capacity, created_at`,
		floorID, number, name, capacity,
	).Scan(&m.ID, &m.FloorID, &m.Number, &m.Name, &m.Capacity, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID returns one room, or nil when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id int) (*models.Room, error) {
	m := &models.Room{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, floor_id, number, name, capacity, created_at FROM rooms WHERE id = $1`, id,
	).Scan(&m.ID, &m.FloorID, &m.Number, &m.Name, &m.Capacity, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns rooms, optionally filtered by floor (floorID > 0).
func (r *RoomRepo) List(ctx context.Context, floorID, limit, offset int) ([]models.Room, error) {
	query := `SELECT id, floor_id, number, name, capacity, created_at FROM rooms`
	args := []any{}
	if floorID > 0 {
		query += ` WHERE floor_id = $1 ORDER BY number LIMIT $2 OFFSET $3`
		args = append(args, floorID, limit, offset)
	} else {
		query += ` ORDER BY id LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Room
	for rows.Next() {
		var m models.Room
		if err := rows.Scan(&m.ID, &m.FloorID, &m.Number, &m.Name, &m.Capacity, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Count returns the number of rooms, optionally for one floor.
func (r *RoomRepo) Count(ctx context.Context, floorID int) (int, error) {
	var n int
	if floorID > 0 {
		err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE floor_id = $1`, floorID).Scan(&n)
		return n, err
	}
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n)
	return n, err
}

// Update changes number, name, and capacity for the given id.
func (r *RoomRepo) Update(ctx context.Context, id int, number, name string, capacity int) (*models.Room, error) {
	m := &models.Room{}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE rooms
		SET number = $1, name = $2, capacity = $3
		WHERE id = $4
		RETURNING id, floor_id, number, name, capacity, created_at`,
		number, name, capacity, id,
	).Scan(&m.ID, &m.FloorID, &m.Number, &m.Name, &m.Capacity, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a room by id.
func (r *RoomRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

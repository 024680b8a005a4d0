package repo

import (
	"context"
	"database/sql"

	"github.com/campuslab/equiptrack/internal/models"
)

// FloorRepo persists floors.
type FloorRepo struct {
	DB *sql.DB
}

// NewFloorRepo returns a new FloorRepo.
func NewFloorRepo(db *sql.DB) *FloorRepo {
	return &FloorRepo{DB: db}
}

// Create inserts a floor and returns it with id set.
func (r *FloorRepo) Create(ctx context.Context, buildingID int, name string, level int) (*models.Floor, error) {
	f := &models.Floor{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO floors (building_id, name, level)
		VALUES ($1, $2, $3)
		RETURNING id, building_id, name, level, created_at`,
		buildingID, name, level,
	).Scan(&f.ID, &f.BuildingID, &f.Name, &f.Level, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetByID returns one floor, or nil when absent.
func (r *FloorRepo) GetByID(ctx context.Context, id int) (*models.Floor, error) {
	f := &models.Floor{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, building_id, name, level, created_at FROM floors WHERE id = $1`, id,
	).Scan(&f.ID, &f.BuildingID, &f.Name, &f.Level, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns floors, optionally filtered by building (buildingID > 0).
func (r *FloorRepo) List(ctx context.Context, buildingID, limit, offset int) ([]models.Floor, error) {
	query := `SELECT id, building_id, name, level, created_at FROM floors`
	args := []any{}
	if buildingID > 0 {
		query += ` WHERE building_id = $1 ORDER BY level LIMIT $2 OFFSET $3`
		args = append(args, buildingID, limit, offset)
	} else {
		query += ` ORDER BY id LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Floor
	for rows.Next() {
		var f models.Floor
		if err := rows.Scan(&f.ID, &f.BuildingID, &f.Name, &f.Level, &f.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Count returns the number of floors, optionally for one building.
func (r *FloorRepo) Count(ctx context.Context, buildingID int) (int, error) {
	var n int
	if buildingID > 0 {
		err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM floors WHERE building_id = $1`, buildingID).Scan(&n)
		return n, err
	}
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM floors`).Scan(&n)
	return n, err
}

// Update changes name and level for the given id.
func (r *FloorRepo) Update(ctx context.Context, id int, name string, level int) (*models.Floor, error) {
	f := &models.Floor{}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE floors
		SET name = $1, level = $2
		WHERE id = $3
		RETURNING id, building_id, name, level, created_at`,
		name, level, id,
	).Scan(&f.ID, &f.BuildingID, &f.Name, &f.Level, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a floor by id.
func (r *FloorRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM floors WHERE id = $1`, id)
	return err
}

package repo

import (
	"context"
	"database/sql"

	"github.com/campuslab/equiptrack/internal/models"
)

// BuildingRepo persists buildings.
type BuildingRepo struct {
	DB *sql.DB
}

// NewBuildingRepo returns a new BuildingRepo.
func NewBuildingRepo(db *sql.DB) *BuildingRepo {
	return &BuildingRepo{DB: db}
}

// Create inserts a building and returns it with id set.
func (r *BuildingRepo) Create(ctx context.Context, name, code, address string) (*models.Building, error) {
	b := &models.Building{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO buildings (name, code, address)
		VALUES ($1, $2, $3)
		RETURNING id, name, code, address, created_at`,
		name, code, address,
	).Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID returns one building, or nil when absent.
func (r *BuildingRepo) GetByID(ctx context.Context, id int) (*models.Building, error) {
	b := &models.Building{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, code, address, created_at FROM buildings WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns buildings ordered by id with limit/offset.
func (r *BuildingRepo) List(ctx context.Context, limit, offset int) ([]models.Building, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, code, address, created_at FROM buildings ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Count returns the total number of buildings.
func (r *BuildingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM buildings`).Scan(&n)
	return n, err
}

// Update changes name, code, and address for the given id.
func (r *BuildingRepo) Update(ctx context.Context, id int, name, code, address string) (*models.Building, error) {
	b := &models.Building{}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE buildings
		SET name = $1, code = $2, address = $3
		WHERE id = $4
		RETURNING id, name, code, address, created_at`,
		name, code, address, id,
	).Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a building by id.
func (r *BuildingRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	return err
}

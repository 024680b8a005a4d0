package repo

import (
	"context"
	"database/sql"

	"github.com/campuslab/equiptrack/internal/models"
)

// StorageRepo persists storage-room stock items.
type StorageRepo struct {
	DB *sql.DB
}

// NewStorageRepo returns a new StorageRepo.
func NewStorageRepo(db *sql.DB) *StorageRepo {
	return &StorageRepo{DB: db}
}

// Create inserts a stock item and returns it with id set.
func (r *StorageRepo) Create(ctx context.Context, name, category string, quantity int, location string) (*models.StorageItem, error) {
	s := &models.StorageItem{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO storage_items (name, category, quantity, location)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, category, quantity, location, created_at`,
		name, category, quantity, location,
	).Scan(&s.ID, &s.Name, &s.Category, &s.Quantity, &s.Location, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID returns one stock item, or nil when absent.
func (r *StorageRepo) GetByID(ctx context.Context, id int) (*models.StorageItem, error) {
	s := &models.StorageItem{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, category, quantity, location, created_at FROM storage_items WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Category, &s.Quantity, &s.Location, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns stock items ordered by id, optionally filtered by category.
func (r *StorageRepo) List(ctx context.Context, category string, limit, offset int) ([]models.StorageItem, error) {
	query := `SELECT id, name, category, quantity, location, created_at FROM storage_items`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1 ORDER BY id LIMIT $2 OFFSET $3`
		args = append(args, category, limit, offset)
	} else {
		query += ` ORDER BY id LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.StorageItem
	for rows.Next() {
		var s models.StorageItem
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Quantity, &s.Location, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Count returns the number of stock items, optionally for one category.
func (r *StorageRepo) Count(ctx context.Context, category string) (int, error) {
	var n int
	if category != "" {
		err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM storage_items WHERE category = $1`, category).Scan(&n)
		return n, err
	}
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM storage_items`).Scan(&n)
	return n, err
}

// Update changes name, category, quantity, and location for the given id.
func (r *StorageRepo) Update(ctx context.Context, id int, name, category string, quantity int, location string) (*models.StorageItem, error) {
	s := &models.StorageItem{}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE storage_items
		SET name = $1, category = $2, quantity = $3, location = $4
		WHERE id = $5
		RETURNING id, name, category, quantity, location, created_at`,
		name, category, quantity, location, id,
	).Scan(&s.ID, &s.Name, &s.Category, &s.Quantity, &s.Location, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes a stock item by id.
func (r *StorageRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM storage_items WHERE id = $1`, id)
	return err
}

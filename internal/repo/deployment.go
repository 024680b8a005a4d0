package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuslab/equiptrack/internal/models"
)

// ErrInsufficientStock is returned by Deploy when the storage item does not
// hold enough stock to cover the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// DeploymentRepo persists deployment records (stock moved into rooms).
type DeploymentRepo struct {
	DB *sql.DB
}

// NewDeploymentRepo returns a new DeploymentRepo.
func NewDeploymentRepo(db *sql.DB) *DeploymentRepo {
	return &DeploymentRepo{DB: db}
}

func scanDeployment(row interface{ Scan(...any) error }) (*models.DeploymentRecord, error) {
	d := &models.DeploymentRecord{}
	var deployedBy sql.NullInt64
	err := row.Scan(&d.ID, &d.StorageItemID, &d.RoomID, &d.Quantity, &deployedBy, &d.Notes, &d.DeployedAt)
	if err != nil {
		return nil, err
	}
	if deployedBy.Valid {
		v := int(deployedBy.Int64)
		d.DeployedBy = &v
	}
	return d, nil
}

// Deploy decrements the source item's stock and inserts the deployment
// record in one transaction. The decrement is conditional on quantity, so
// concurrent deployments cannot drive stock negative; when the item is
// missing or too low, ErrInsufficientStock is returned and nothing changes.
func (r *DeploymentRepo) Deploy(ctx context.Context, d models.DeploymentRecord) (*models.DeploymentRecord, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE storage_items SET quantity = quantity - $1
		WHERE id = $2 AND quantity >= $1`,
		d.Quantity, d.StorageItemID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrInsufficientStock
	}

	var deployedBy any
	if d.DeployedBy != nil {
		deployedBy = *d.DeployedBy
	}
	rec, err := scanDeployment(tx.QueryRowContext(ctx, `
		INSERT INTO deployment_records (storage_item_id, room_id, quantity, deployed_by, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, storage_item_id, room_id, quantity, deployed_by, COALESCE(notes,''), deployed_at`,
		d.StorageItemID, d.RoomID, d.Quantity, deployedBy, d.Notes,
	))
	if err != nil {
		return nil, err
	}
	return rec, tx.Commit()
}

// GetByID returns one deployment record, or nil when absent.
func (r *DeploymentRepo) GetByID(ctx context.Context, id int) (*models.DeploymentRecord, error) {
	d, err := scanDeployment(r.DB.QueryRowContext(ctx, `
		SELECT id, storage_item_id, room_id, quantity, deployed_by, COALESCE(notes,''), deployed_at
		FROM deployment_records WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return d, err
}

// List returns deployment records newest first, optionally for one room.
func (r *DeploymentRepo) List(ctx context.Context, roomID, limit, offset int) ([]models.DeploymentRecord, error) {
	query := `
		SELECT id, storage_item_id, room_id, quantity, deployed_by, COALESCE(notes,''), deployed_at
		FROM deployment_records`
	args := []any{}
	if roomID > 0 {
		query += ` WHERE room_id = $1 ORDER BY deployed_at DESC LIMIT $2 OFFSET $3`
		args = append(args, roomID, limit, offset)
	} else {
		query += ` ORDER BY deployed_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.DeploymentRecord
	for rows.Next() {
		d, err := scanDeployment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

// Count returns the number of deployment records, optionally for one room.
func (r *DeploymentRepo) Count(ctx context.Context, roomID int) (int, error) {
	var n int
	if roomID > 0 {
		err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM deployment_records WHERE room_id = $1`, roomID).Scan(&n)
		return n, err
	}
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM deployment_records`).Scan(&n)
	return n, err
}

// Remove deletes a deployment record and returns its quantity to the source
// item's stock in one transaction. Returns nil, nil when the record is
// absent.
func (r *DeploymentRepo) Remove(ctx context.Context, id int) (*models.DeploymentRecord, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	d, err := scanDeployment(tx.QueryRowContext(ctx, `
		DELETE FROM deployment_records WHERE id = $1
		RETURNING id, storage_item_id, room_id, quantity, deployed_by, COALESCE(notes,''), deployed_at`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE storage_items SET quantity = quantity + $1 WHERE id = $2`,
		d.Quantity, d.StorageItemID)
	if err != nil {
		return nil, err
	}
	return d, tx.Commit()
}

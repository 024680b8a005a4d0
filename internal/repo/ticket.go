package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuslab/equiptrack/internal/models"
)

// TicketRepo persists support tickets.
type TicketRepo struct {
	DB *sql.DB
}

// NewTicketRepo returns a new TicketRepo.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{DB: db}
}

const ticketColumns = `id, title, description, status, priority, type, room_id, created_by, created_at, updated_at`

func scanTicket(row interface{ Scan(...any) error }) (*models.Ticket, error) {
	t := &models.Ticket{}
	var roomID, createdBy sql.NullInt64
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Type, &roomID, &createdBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if roomID.Valid {
		v := int(roomID.Int64)
		t.RoomID = &v
	}
	if createdBy.Valid {
		v := int(createdBy.Int64)
		t.CreatedBy = &v
	}
	return t, nil
}

// Create inserts a ticket and returns it with id and timestamps set.
func (r *TicketRepo) Create(ctx context.Context, t models.Ticket) (*models.Ticket, error) {
	return scanTicket(r.DB.QueryRowContext(ctx, `
		INSERT INTO tickets (title, description, status, priority, type, room_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+ticketColumns,
		t.Title, t.Description, t.Status, t.Priority, t.Type, nullableInt(t.RoomID), nullableInt(t.CreatedBy),
	))
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// GetByID returns one ticket, or nil when absent.
func (r *TicketRepo) GetByID(ctx context.Context, id int) (*models.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// List returns tickets newest first, optionally filtered by status.
func (r *TicketRepo) List(ctx context.Context, status string, limit, offset int) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// Count returns the number of tickets, optionally for one status.
func (r *TicketRepo) Count(ctx context.Context, status string) (int, error) {
	var n int
	if status != "" {
		err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE status = $1`, status).Scan(&n)
		return n, err
	}
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&n)
	return n, err
}

// UpdateStatus sets the ticket status and bumps updated_at.
func (r *TicketRepo) UpdateStatus(ctx context.Context, id int, status string) (*models.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx, `
		UPDATE tickets
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+ticketColumns,
		status, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// Delete removes a ticket by id.
func (r *TicketRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	return err
}

// MarkStaleOlderThan moves OPEN tickets created before the cutoff to STALE.
// Used by the background maintenance job; returns the number of rows changed.
func (r *TicketRepo) MarkStaleOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE tickets
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3`,
		models.TicketStatusStale, models.TicketStatusOpen, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

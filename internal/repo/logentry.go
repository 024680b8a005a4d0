package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campuslab/equiptrack/internal/models"
)

// LogRepo persists audit log entries. Entries are append-only; nothing
// updates a row after insert.
type LogRepo struct {
	DB *sql.DB
}

// NewLogRepo returns a new LogRepo.
func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{DB: db}
}

// Insert records one entry. created_at is stamped by the database.
func (r *LogRepo) Insert(ctx context.Context, e models.LogEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO logs (level, actor, action, resource, resource_id, message, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Level, e.Actor, e.Action, e.Resource, e.ResourceID, e.Message, e.Details,
	)
	return err
}

// LogFilter narrows the log read path. Empty fields mean "no filter".
type LogFilter struct {
	Level     string
	Action    string
	Resource  string
	Actor     string
	Search    string // matches message or details, case-insensitive
	SortBy    string // created_at (default), level, action, resource, actor
	SortOrder string // asc or desc (default)
	Limit     int
	Offset    int
}

// sortColumns whitelists sortable columns; anything else falls back to
// created_at so the filter can never inject SQL.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"level":      "level",
	"action":     "action",
	"resource":   "resource",
	"actor":      "actor",
}

func (f LogFilter) where() (string, []any) {
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
	if f.Level != "" {
		add("level = $%d", f.Level)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.Resource != "" {
		add("resource = $%d", f.Resource)
	}
	if f.Actor != "" {
		add("actor = $%d", f.Actor)
	}
	if f.Search != "" {
		n := len(args) + 1
		args = append(args, "%"+f.Search+"%")
		if clause == "" {
			clause = " WHERE "
		} else {
			clause += " AND "
		}
		clause += fmt.Sprintf("(message ILIKE $%d OR details ILIKE $%d)", n, n)
	}
	return clause, args
}

func (f LogFilter) orderBy() string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

// List returns matching entries plus the total match count.
func (r *LogRepo) List(ctx context.Context, f LogFilter) ([]models.LogEntry, int, error) {
	clause, args := f.where()

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM logs`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, level, actor, action, resource, COALESCE(resource_id,''), message, COALESCE(details,''), created_at FROM logs` +
		clause + f.orderBy() +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Actor, &e.Action, &e.Resource, &e.ResourceID, &e.Message, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// PurgeOlderThan deletes entries created before the cutoff. Used by the
// retention job; returns the number of rows removed.
func (r *LogRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

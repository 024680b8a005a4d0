package repo

import (
	"context"
	"database/sql"

	"github.com/campuslab/equiptrack/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepo persists user accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo returns a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, username, email, first_name, last_name, COALESCE(password_hash,''), role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a user. password may be empty; when set it is stored as a
// bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, username, email, firstName, lastName, password, role string) (*models.User, error) {
	hash := ""
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(b)
	}

	query := `
		INSERT INTO users (username, email, first_name, last_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query, username, email, firstName, lastName, hash, role))
}

// GetByID returns one user, or nil when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// GetByUsername returns one user by username, or nil when absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// Update changes username, email, names, and role for the given id.
func (r *UserRepo) Update(ctx context.Context, id int, username, email, firstName, lastName, role string) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4, role = $5
		WHERE id = $6
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, username, email, firstName, lastName, role, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// List returns users ordered by id with limit/offset.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

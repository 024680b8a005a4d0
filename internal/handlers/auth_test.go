package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &AuthHandler{
		Users:       repo.NewUserRepo(db),
		Secret:      []byte("test-secret"),
		ExpireHours: 1,
	}, mock
}

func userRow(passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "first_name", "last_name", "password_hash", "role", "created_at"}).
		AddRow(5, "ana", "ana@school.edu", "Ana", "Reyes", passwordHash, "member", time.Now())
}

func postLogin(h *AuthHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestAuthLogin_Success(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`SELECT id, username`).WithArgs("ana").
		WillReturnRows(userRow(string(hash)))

	rec := postLogin(h, `{"username":"ana","password":"hunter2hunter2"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Token == "" {
		t.Error("expected a token in the response")
	}
}

func TestAuthLogin_WrongPasswordRejected(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`SELECT id, username`).WithArgs("ana").
		WillReturnRows(userRow(string(hash)))

	rec := postLogin(h, `{"username":"ana","password":"not-it"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestAuthLogin_PasswordlessAccountRejected(t *testing.T) {
	h, mock := newAuthHandler(t)

	// An account with no stored hash never matches, whatever the password.
	mock.ExpectQuery(`SELECT id, username`).WithArgs("ana").
		WillReturnRows(userRow(""))

	rec := postLogin(h, `{"username":"ana","password":""}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestAuthLogin_UnknownUserRejected(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(`SELECT id, username`).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := postLogin(h, `{"username":"ghost","password":"whatever"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

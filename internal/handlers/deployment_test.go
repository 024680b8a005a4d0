package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/repo"
)

func newDeploymentHandler(t *testing.T) (*DeploymentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &DeploymentHandler{
		Repo:    repo.NewDeploymentRepo(db),
		Storage: repo.NewStorageRepo(db),
	}, mock
}

func storageItemRow(quantity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "category", "quantity", "location", "created_at"}).
		AddRow(5, "Keyboard", "peripherals", quantity, "Shelf B", time.Now())
}

func TestDeploymentCreate_Success(t *testing.T) {
	h, mock := newDeploymentHandler(t)

	mock.ExpectQuery(`SELECT id, name, category`).WithArgs(5).
		WillReturnRows(storageItemRow(10))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE storage_items SET quantity = quantity - \$1`).
		WithArgs(3, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO deployment_records`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "storage_item_id", "room_id", "quantity", "deployed_by", "notes", "deployed_at"}).
			AddRow(1, 5, 7, 3, nil, "", time.Now()))
	mock.ExpectCommit()

	body := strings.NewReader(`{"storageItemId": 5, "roomId": 7, "quantity": 3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/deployments", body)
	rec := httptest.NewRecorder()
	h.CreateDeployment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeploymentCreate_InsufficientStock(t *testing.T) {
	h, mock := newDeploymentHandler(t)

	// The item exists, but the conditional decrement loses the race: no row
	// matches and the request fails with 400 instead of writing anything.
	mock.ExpectQuery(`SELECT id, name, category`).WithArgs(5).
		WillReturnRows(storageItemRow(2))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE storage_items SET quantity = quantity - \$1`).
		WithArgs(3, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	body := strings.NewReader(`{"storageItemId": 5, "roomId": 7, "quantity": 3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/deployments", body)
	rec := httptest.NewRecorder()
	h.CreateDeployment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "insufficient stock") {
		t.Errorf("body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeploymentDelete_RestoresStock(t *testing.T) {
	h, mock := newDeploymentHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM deployment_records`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "storage_item_id", "room_id", "quantity", "deployed_by", "notes", "deployed_at"}).
			AddRow(9, 5, 7, 3, nil, "", time.Now()))
	mock.ExpectExec(`UPDATE storage_items SET quantity = quantity \+ \$1`).
		WithArgs(3, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := requestWithID(httptest.NewRequest(http.MethodDelete, "/api/deployments/9", nil), "9")
	rec := httptest.NewRecorder()
	h.DeleteDeployment(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204, body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeploymentDelete_NotFound(t *testing.T) {
	h, mock := newDeploymentHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM deployment_records`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "storage_item_id", "room_id", "quantity", "deployed_by", "notes", "deployed_at"}))
	mock.ExpectRollback()

	req := requestWithID(httptest.NewRequest(http.MethodDelete, "/api/deployments/99", nil), "99")
	rec := httptest.NewRecorder()
	h.DeleteDeployment(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

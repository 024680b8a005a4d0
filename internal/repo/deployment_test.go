package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/models"
)

func TestDeploymentRepo_Deploy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	deployedBy := 2
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE storage_items SET quantity = quantity - \$1`).
		WithArgs(3, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO deployment_records`).
		WithArgs(5, 7, 3, 2, "for the new lab").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "storage_item_id", "room_id", "quantity", "deployed_by", "notes", "deployed_at"}).
			AddRow(1, 5, 7, 3, 2, "for the new lab", time.Now()))
	mock.ExpectCommit()

	deployments := NewDeploymentRepo(db)
	out, err := deployments.Deploy(context.Background(), models.DeploymentRecord{
		StorageItemID: 5, RoomID: 7, Quantity: 3, DeployedBy: &deployedBy, Notes: "for the new lab",
	})
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if out.ID != 1 || out.Quantity != 3 {
		t.Errorf("unexpected record: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeploymentRepo_Deploy_InsufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The conditional decrement matches no row, so no record is inserted and
	// the transaction rolls back.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE storage_items SET quantity = quantity - \$1`).
		WithArgs(50, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	deployments := NewDeploymentRepo(db)
	_, err = deployments.Deploy(context.Background(), models.DeploymentRecord{
		StorageItemID: 5, RoomID: 7, Quantity: 50,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Deploy: got %v, want ErrInsufficientStock", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeploymentRepo_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

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

	deployments := NewDeploymentRepo(db)
	out, err := deployments.Remove(context.Background(), 9)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if out == nil || out.StorageItemID != 5 || out.Quantity != 3 {
		t.Errorf("unexpected record: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeploymentRepo_Remove_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM deployment_records`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "storage_item_id", "room_id", "quantity", "deployed_by", "notes", "deployed_at"}))
	mock.ExpectRollback()

	deployments := NewDeploymentRepo(db)
	out, err := deployments.Remove(context.Background(), 99)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil for missing record, got %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

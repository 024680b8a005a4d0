package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campuslab/equiptrack/internal/authz"
	"github.com/campuslab/equiptrack/internal/repo"
)

func TestAudit_PreAndPostEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// pre-invocation entry
	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs("debug", "anonymous", "READ", "building", "", "GET /api/buildings", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// post-invocation entry
	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs("info", "anonymous", "READ", "building", "", "GET /api/buildings -> 200", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	logs := repo.NewLogRepo(db)
	handler := Audit(logs, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/buildings", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAudit_ErrorStatusLogsErrorLevel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs("debug", "alice", "DELETE", "room", "5", "DELETE /api/rooms/5", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs("error", "alice", "DELETE", "room", "5", "DELETE /api/rooms/5 -> 500", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	logs := repo.NewLogRepo(db)
	handler := Audit(logs, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest("DELETE", "/api/rooms/5", nil)
	req = req.WithContext(WithPrincipal(req.Context(), Principal{ID: 1, Username: "alice", Role: authz.RoleAdmin}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAudit_PanicLogsAndRethrows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO logs`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs("error", "anonymous", "CREATE", "ticket", "", "POST /api/tickets panicked: boom", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	logs := repo.NewLogRepo(db)
	handler := Audit(logs, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("POST", "/api/tickets", nil)
	rr := httptest.NewRecorder()

	defer func() {
		rec := recover()
		if rec != "boom" {
			t.Errorf("panic not re-raised unchanged: %v", rec)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	}()
	handler.ServeHTTP(rr, req)
	t.Error("expected panic to propagate")
}

func TestAudit_UnknownPathPassesThroughUnlogged(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	// No Insert expectations: any DB call would fail the test.

	logs := repo.NewLogRepo(db)
	called := false
	handler := Audit(logs, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Error("handler was not invoked")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAudit_LogFailureDoesNotChangeResponse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO logs`).WillReturnError(errBoom{})
	mock.ExpectExec(`INSERT INTO logs`).WillReturnError(errBoom{})

	logs := repo.NewLogRepo(db)
	handler := Audit(logs, "building")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	}))

	req := httptest.NewRequest("POST", "/api/buildings", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("status changed by logging failure: got %d", rr.Code)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "sink unavailable" }

func TestActionForMethod(t *testing.T) {
	cases := map[string]string{
		"GET":     "READ",
		"POST":    "CREATE",
		"PUT":     "UPDATE",
		"PATCH":   "UPDATE",
		"DELETE":  "DELETE",
		"OPTIONS": "READ",
	}
	for method, want := range cases {
		if got := actionForMethod(method); got != want {
			t.Errorf("actionForMethod(%s) = %s, want %s", method, got, want)
		}
	}
}

package services

import (
	"errors"
	"testing"

	"backend/internal/domain"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

// The commit path writes the trip and flips the bus to assigned in one
// transaction; a failure on either statement must roll everything back.
func TestCreateTripCommitTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := baseAssignmentService()
	svc.DB = db
	svc.Trips = repositories.TripRepository{DB: db}
	svc.Buses = repositories.BusRepository{DB: db}
	svc.CommitTrip = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("UPDATE buses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.CreateTrip(baseTripRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Trip.ID != 77 {
		t.Fatalf("trip id: got %d want 77", result.Trip.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripCommitRollsBackOnBusUpdateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := baseAssignmentService()
	svc.DB = db
	svc.Trips = repositories.TripRepository{DB: db}
	svc.Buses = repositories.BusRepository{DB: db}
	svc.CommitTrip = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("UPDATE buses").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	_, err = svc.CreateTrip(baseTripRequest())
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on commit failure, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

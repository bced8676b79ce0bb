package services

import (
	"errors"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

var assignTestNow = time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC)

func assignTestRoute() models.Route {
	return models.Route{
		ID:              1,
		RouteNumber:     "KL-101",
		RouteName:       "Central - Airport",
		TotalDistanceKm: 100,
		RouteType:       "intercity",
	}
}

func assignTestBus(id int64) models.Bus {
	future := assignTestNow.AddDate(1, 0, 0)
	return models.Bus{
		ID:              id,
		BusNumber:       "KL-15-A-100",
		DepotID:         5,
		BusType:         "ordinary",
		CapacityTotal:   45,
		Layout:          models.SeatLayout{Family: models.LayoutSeater, Rows: 15, SeatsPerRow: 3},
		InsuranceExpiry: &future,
		FitnessExpiry:   &future,
		Status:          models.BusIdle,
	}
}

func baseAssignmentService() AssignmentService {
	return AssignmentService{
		LoadRoute: func(id int64) (models.Route, error) { return assignTestRoute(), nil },
		ListBuses: func(depotID int64, busType string) ([]models.Bus, error) {
			return []models.Bus{assignTestBus(1)}, nil
		},
		ListDrivers: func(depotID int64) ([]models.Driver, error) {
			return []models.Driver{{ID: 11, Name: "driver", Active: true}}, nil
		},
		ListConductors: func(depotID int64) ([]models.Conductor, error) {
			return []models.Conductor{{ID: 21, Name: "conductor", Active: true}}, nil
		},
		Commitments: func(kind domain.ResourceKind, resourceID int64, serviceDate string) ([]models.Trip, error) {
			return nil, nil
		},
		Fares: FareService{
			ListPolicies: func(busType, routeType string) ([]models.FarePolicy, error) {
				return []models.FarePolicy{{
					ID:            1,
					Name:          "City / Ordinary",
					RatePerKm:     1.8,
					MinimumFare:   12,
					Active:        true,
					EffectiveFrom: assignTestNow.AddDate(0, -1, 0),
				}}, nil
			},
			Now: func() time.Time { return assignTestNow },
		},
		CommitTrip: func(trip models.Trip) (int64, error) { return 77, nil },
		Now:        func() time.Time { return assignTestNow },
	}
}

func baseTripRequest() CreateTripRequest {
	return CreateTripRequest{
		RouteID:     1,
		DepotID:     5,
		BusType:     "ordinary",
		ServiceDate: "2025-06-20",
		StartTime:   "08:00",
		EndTime:     "12:00",
	}
}

func TestCreateTripAssignsAllResources(t *testing.T) {
	svc := baseAssignmentService()

	result, err := svc.CreateTrip(baseTripRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Trip.ID != 77 {
		t.Fatalf("trip id: got %d want 77", result.Trip.ID)
	}
	if result.Trip.Status != models.TripScheduled {
		t.Fatalf("status: got %s want scheduled", result.Trip.Status)
	}
	if result.Bus.ID != 1 || result.Driver.ID != 11 || result.Conductor.ID != 21 {
		t.Fatalf("unexpected assignment: bus=%d driver=%d conductor=%d", result.Bus.ID, result.Driver.ID, result.Conductor.ID)
	}
	if result.Trip.Fare != 180 {
		t.Fatalf("fare: got %.2f want 180", result.Trip.Fare)
	}
	// capacity defaults to the assigned bus
	if result.Trip.Capacity != 45 {
		t.Fatalf("capacity: got %d want 45", result.Trip.Capacity)
	}
}

func TestCreateTripNoBusNothingPersists(t *testing.T) {
	committed := 0
	svc := baseAssignmentService()
	svc.ListBuses = func(depotID int64, busType string) ([]models.Bus, error) {
		return nil, nil
	}
	svc.CommitTrip = func(trip models.Trip) (int64, error) {
		committed++
		return 0, nil
	}

	req := baseTripRequest()
	req.BusType = "volvo"
	_, err := svc.CreateTrip(req)

	var unavailable domain.ResourceUnavailableError
	if !domain.IsResourceUnavailable(err) {
		t.Fatalf("expected ResourceUnavailableError, got %v", err)
	}
	if errors.As(err, &unavailable); unavailable.Stage != "bus" {
		t.Fatalf("stage: got %q want bus", unavailable.Stage)
	}
	if committed != 0 {
		t.Fatal("commit ran despite bus-stage failure")
	}
}

func TestCreateTripDriverStageFailureLeavesBusUntouched(t *testing.T) {
	committed := 0
	svc := baseAssignmentService()
	svc.ListDrivers = func(depotID int64) ([]models.Driver, error) {
		// active driver already at the duty limit
		return []models.Driver{{ID: 11, Active: true}}, nil
	}
	svc.Commitments = func(kind domain.ResourceKind, resourceID int64, serviceDate string) ([]models.Trip, error) {
		if kind == domain.ResourceDriver {
			return []models.Trip{
				{ID: 1, StartTime: "00:00", EndTime: "05:00", Status: models.TripScheduled},
			}, nil
		}
		return nil, nil
	}
	svc.CommitTrip = func(trip models.Trip) (int64, error) {
		committed++
		return 0, nil
	}

	_, err := svc.CreateTrip(baseTripRequest())

	var unavailable domain.ResourceUnavailableError
	if errors.As(err, &unavailable); unavailable.Stage != "driver" {
		t.Fatalf("stage: got %q want driver, err=%v", unavailable.Stage, err)
	}
	if len(unavailable.Candidates) != 1 || unavailable.Candidates[0] != 11 {
		t.Fatalf("candidates: got %v want [11]", unavailable.Candidates)
	}
	if committed != 0 {
		t.Fatal("commit ran despite driver-stage failure")
	}

	// the same request succeeds once the driver frees up
	svc.Commitments = func(kind domain.ResourceKind, resourceID int64, serviceDate string) ([]models.Trip, error) {
		return nil, nil
	}
	svc.CommitTrip = func(trip models.Trip) (int64, error) { return 78, nil }
	if _, err := svc.CreateTrip(baseTripRequest()); err != nil {
		t.Fatalf("retry after freeing driver failed: %v", err)
	}
}

func TestCreateTripFirstFeasibleByID(t *testing.T) {
	svc := baseAssignmentService()
	blocked := assignTestBus(1)
	blocked.MaintenanceDue = true
	svc.ListBuses = func(depotID int64, busType string) ([]models.Bus, error) {
		return []models.Bus{blocked, assignTestBus(2), assignTestBus(3)}, nil
	}

	result, err := svc.CreateTrip(baseTripRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Bus.ID != 2 {
		t.Fatalf("expected first feasible bus 2, got %d", result.Bus.ID)
	}
}

func TestCreateTripPolicyMissingBecomesResourceUnavailable(t *testing.T) {
	svc := baseAssignmentService()
	svc.Fares.ListPolicies = func(busType, routeType string) ([]models.FarePolicy, error) {
		return nil, nil
	}

	_, err := svc.CreateTrip(baseTripRequest())
	var unavailable domain.ResourceUnavailableError
	if errors.As(err, &unavailable); unavailable.Stage != "farePolicy" {
		t.Fatalf("stage: got %q want farePolicy, err=%v", unavailable.Stage, err)
	}
}

func TestCreateTripRejectsBadSchedule(t *testing.T) {
	svc := baseAssignmentService()

	req := baseTripRequest()
	req.ServiceDate = "20-06-2025"
	if _, err := svc.CreateTrip(req); !domain.IsValidation(err) {
		t.Fatalf("bad date accepted: %v", err)
	}

	req = baseTripRequest()
	req.StartTime = "12:00"
	req.EndTime = "08:00"
	if _, err := svc.CreateTrip(req); !domain.IsValidation(err) {
		t.Fatalf("inverted window accepted: %v", err)
	}
}

package services

import (
	"database/sql"
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	intdb "backend/internal/db"
)

// policyBusTypes maps fleet bus-type codes to the bus-type names fare
// policies are keyed by. Unknown codes fall back to the ordinary service
// policy; that fallback is this caller's explicit decision, the resolver
// itself never defaults.
var policyBusTypes = map[string]string{
	"ordinary":         "City / Ordinary",
	"fast_passenger":   "Fast Passenger / LSFP",
	"super_fast":       "Super Fast Passenger",
	"super_deluxe":     "Super Deluxe",
	"low_floor_ac":     "A/C Low Floor",
	"garuda_volvo":     "Luxury / Hi-tech & AC",
	"venad":            "City Fast",
	"deluxe_express":   "Super Express",
	"garuda_king_long": "Garuda Sanchari / Biaxle Premium",
	"rajadhani":        "Garuda Maharaja / Garuda King / Multi-axle Premium",
}

// PolicyBusType resolves the fare-policy bus type for a fleet bus type.
func PolicyBusType(busType string) string {
	if mapped, ok := policyBusTypes[busType]; ok {
		return mapped
	}
	return "City / Ordinary"
}

// CreateTripRequest is the trip creation input.
type CreateTripRequest struct {
	RouteID     int64  `json:"routeId" binding:"required"`
	DepotID     int64  `json:"depotId" binding:"required"`
	BusType     string `json:"busType" binding:"required"`
	ServiceDate string `json:"serviceDate" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Capacity    int    `json:"capacity"`
}

// TripResult reports a committed trip together with what was assigned.
type TripResult struct {
	Trip      models.Trip      `json:"trip"`
	Bus       models.Bus       `json:"bus"`
	Driver    models.Driver    `json:"driver"`
	Conductor models.Conductor `json:"conductor"`
	Fare      FareResult       `json:"fareCalculation"`
}

// AssignmentService coordinates bus → driver → conductor selection for a new
// trip and commits the result in one transaction. Matching is deterministic
// greedy first-feasible over id-ordered candidates; it does not optimize
// across the fleet.
type AssignmentService struct {
	DB         *sql.DB
	Routes     repositories.RouteRepository
	Buses      repositories.BusRepository
	Drivers    repositories.DriverRepository
	Conductors repositories.ConductorRepository
	Trips      repositories.TripRepository
	Fares      FareService
	RequestID  string

	// Test injection points; nil means use the repositories above.
	LoadRoute      func(id int64) (models.Route, error)
	ListBuses      func(depotID int64, busType string) ([]models.Bus, error)
	ListDrivers    func(depotID int64) ([]models.Driver, error)
	ListConductors func(depotID int64) ([]models.Conductor, error)
	Commitments    func(kind domain.ResourceKind, resourceID int64, serviceDate string) ([]models.Trip, error)
	CommitTrip     func(trip models.Trip) (int64, error)
	Now            func() time.Time
}

func (s AssignmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AssignmentService) loadRoute(id int64) (models.Route, error) {
	if s.LoadRoute != nil {
		return s.LoadRoute(id)
	}
	return s.Routes.GetByID(id)
}

func (s AssignmentService) listBuses(depotID int64, busType string) ([]models.Bus, error) {
	if s.ListBuses != nil {
		return s.ListBuses(depotID, busType)
	}
	return s.Buses.ListByDepotAndType(depotID, busType)
}

func (s AssignmentService) listDrivers(depotID int64) ([]models.Driver, error) {
	if s.ListDrivers != nil {
		return s.ListDrivers(depotID)
	}
	return s.Drivers.ListActiveByDepot(depotID)
}

func (s AssignmentService) listConductors(depotID int64) ([]models.Conductor, error) {
	if s.ListConductors != nil {
		return s.ListConductors(depotID)
	}
	return s.Conductors.ListActiveByDepot(depotID)
}

func (s AssignmentService) commitments(kind domain.ResourceKind, id int64, serviceDate string) ([]models.Trip, error) {
	if s.Commitments != nil {
		return s.Commitments(kind, id, serviceDate)
	}
	return s.Trips.ListCommitted(kind, id, serviceDate)
}

// CreateTrip runs the full assignment. All failures are detected before any
// write; the commit itself is a single transaction that inserts the trip and
// marks the bus assigned, so no partial trip ever survives.
func (s AssignmentService) CreateTrip(req CreateTripRequest) (TripResult, error) {
	if _, err := utils.ParseDate(req.ServiceDate); err != nil {
		return TripResult{}, domain.ValidationError{Field: "serviceDate", Msg: "expected YYYY-MM-DD"}
	}
	window, err := ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return TripResult{}, err
	}

	route, err := s.loadRoute(req.RouteID)
	if err != nil {
		return TripResult{}, err
	}
	if route.TotalDistanceKm <= 0 {
		return TripResult{}, domain.ValidationError{Field: "route", Msg: "route has no distance"}
	}

	// Serialize the check-then-commit per depot/date so two concurrent
	// requests cannot both pass the availability read for the same resource.
	unlock := assignLocks.Lock(fmt.Sprintf("assign:%d:%s", req.DepotID, req.ServiceDate))
	defer unlock()

	now := s.now()

	bus, err := s.pickBus(req, window, now)
	if err != nil {
		return TripResult{}, err
	}
	driver, err := s.pickDriver(req, window)
	if err != nil {
		return TripResult{}, err
	}
	conductor, err := s.pickConductor(req, window)
	if err != nil {
		return TripResult{}, err
	}

	fare, err := s.Fares.ResolveFare(PolicyBusType(req.BusType), route.RouteType, route.TotalDistanceKm, FareContext{
		TimeOfDay: utils.TimeOfDayBucket(req.StartTime),
	})
	if err != nil {
		if domain.IsPolicyMissing(err) {
			return TripResult{}, domain.ResourceUnavailableError{Stage: "farePolicy", Msg: err.Error()}
		}
		return TripResult{}, err
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = bus.CapacityTotal
	}

	trip := models.Trip{
		RouteID:     route.ID,
		BusID:       bus.ID,
		DriverID:    driver.ID,
		ConductorID: conductor.ID,
		DepotID:     req.DepotID,
		ServiceDate: req.ServiceDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    capacity,
		Fare:        fare.FinalFare,
		Status:      models.TripScheduled,
	}

	tripID, err := s.commit(trip)
	if err != nil {
		return TripResult{}, domain.ConflictError{Resource: "trip", Msg: "assignment commit failed", Err: err}
	}
	trip.ID = tripID

	utils.LogEvent(s.RequestID, "assignment", "trip_created",
		fmt.Sprintf("trip_id=%d route_id=%d bus_id=%d driver_id=%d conductor_id=%d fare=%.2f",
			tripID, route.ID, bus.ID, driver.ID, conductor.ID, fare.FinalFare))

	return TripResult{Trip: trip, Bus: bus, Driver: driver, Conductor: conductor, Fare: fare}, nil
}

func (s AssignmentService) pickBus(req CreateTripRequest, w Window, now time.Time) (models.Bus, error) {
	buses, err := s.listBuses(req.DepotID, req.BusType)
	if err != nil {
		return models.Bus{}, err
	}
	inspected := make([]int64, 0, len(buses))
	for _, bus := range buses {
		inspected = append(inspected, bus.ID)
		committed, err := s.commitments(domain.ResourceBus, bus.ID, req.ServiceDate)
		if err != nil {
			return models.Bus{}, err
		}
		if ok, _ := BusAvailable(bus, committed, w, now); ok {
			return bus, nil
		}
	}
	return models.Bus{}, domain.ResourceUnavailableError{
		Stage:      "bus",
		Candidates: inspected,
		Msg:        fmt.Sprintf("no compliant available bus of type %q in depot", req.BusType),
	}
}

func (s AssignmentService) pickDriver(req CreateTripRequest, w Window) (models.Driver, error) {
	drivers, err := s.listDrivers(req.DepotID)
	if err != nil {
		return models.Driver{}, err
	}
	inspected := make([]int64, 0, len(drivers))
	for _, driver := range drivers {
		inspected = append(inspected, driver.ID)
		committed, err := s.commitments(domain.ResourceDriver, driver.ID, req.ServiceDate)
		if err != nil {
			return models.Driver{}, err
		}
		if ok, _ := DriverAvailable(driver, committed, w); ok {
			return driver, nil
		}
	}
	return models.Driver{}, domain.ResourceUnavailableError{
		Stage:      "driver",
		Candidates: inspected,
		Msg:        "no driver within daily duty limit",
	}
}

func (s AssignmentService) pickConductor(req CreateTripRequest, w Window) (models.Conductor, error) {
	conductors, err := s.listConductors(req.DepotID)
	if err != nil {
		return models.Conductor{}, err
	}
	inspected := make([]int64, 0, len(conductors))
	for _, conductor := range conductors {
		inspected = append(inspected, conductor.ID)
		committed, err := s.commitments(domain.ResourceConductor, conductor.ID, req.ServiceDate)
		if err != nil {
			return models.Conductor{}, err
		}
		if ok, _ := ConductorAvailable(conductor, committed, w); ok {
			return conductor, nil
		}
	}
	return models.Conductor{}, domain.ResourceUnavailableError{
		Stage:      "conductor",
		Candidates: inspected,
		Msg:        "no conductor without overlapping trip",
	}
}

func (s AssignmentService) commit(trip models.Trip) (int64, error) {
	if s.CommitTrip != nil {
		return s.CommitTrip(trip)
	}
	var id int64
	err := intdb.WithTx(s.DB, func(tx *sql.Tx) error {
		var err error
		id, err = s.Trips.InsertTx(tx, trip)
		if err != nil {
			return err
		}
		return s.Buses.UpdateStatusTx(tx, trip.BusID, models.BusAssigned)
	})
	return id, err
}

// UpdateTripStatus applies one lifecycle step. Cancelling a trip returns the
// bus to idle when no other live trip holds it on that date.
func (s AssignmentService) UpdateTripStatus(tripID int64, next string) (models.Trip, error) {
	trip, err := s.Trips.GetByID(tripID)
	if err != nil {
		return models.Trip{}, err
	}
	if err := trip.Transition(next); err != nil {
		return models.Trip{}, err
	}
	if err := s.Trips.UpdateStatus(tripID, next); err != nil {
		return models.Trip{}, err
	}

	if next == models.TripCancelled || next == models.TripCompleted {
		remaining, err := s.Trips.CountActiveForBus(trip.BusID, trip.ServiceDate, trip.ID)
		if err == nil && remaining == 0 {
			_ = s.Buses.UpdateStatus(trip.BusID, models.BusIdle)
		}
	}

	utils.LogEvent(s.RequestID, "assignment", "trip_status",
		fmt.Sprintf("trip_id=%d status=%s", tripID, next))
	return trip, nil
}

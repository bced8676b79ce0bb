package models

import "backend/internal/domain"

// Trip status values.
const (
	TripScheduled = "scheduled"
	TripBoarding  = "boarding"
	TripRunning   = "running"
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

// tripTransitions is the full lifecycle: scheduled → boarding → running →
// completed, with cancellation allowed from scheduled and boarding.
// completed and cancelled are terminal.
var tripTransitions = map[string][]string{
	TripScheduled: {TripBoarding, TripCancelled},
	TripBoarding:  {TripRunning, TripCancelled},
	TripRunning:   {TripCompleted},
	TripCompleted: {},
	TripCancelled: {},
}

// Trip is a single scheduled service instance with its resolved resources and
// computed fare.
type Trip struct {
	ID          int64   `json:"id"`
	RouteID     int64   `json:"routeId"`
	BusID       int64   `json:"busId"`
	DriverID    int64   `json:"driverId"`
	ConductorID int64   `json:"conductorId"`
	DepotID     int64   `json:"depotId"`
	ServiceDate string  `json:"serviceDate"` // YYYY-MM-DD, date granularity
	StartTime   string  `json:"startTime"`   // HH:MM local clock
	EndTime     string  `json:"endTime"`     // HH:MM local clock
	Capacity    int     `json:"capacity"`
	Fare        float64 `json:"fare"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// CanTransition reports whether the trip status machine allows the move.
func (t Trip) CanTransition(next string) bool {
	for _, allowed := range tripTransitions[t.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change.
func (t *Trip) Transition(next string) error {
	if !t.CanTransition(next) {
		return domain.InvalidTransitionError{Entity: "trip", From: t.Status, To: next}
	}
	t.Status = next
	return nil
}

// IsBookable reports whether bookings may still be accepted.
func (t Trip) IsBookable() bool {
	return t.Status == TripScheduled
}

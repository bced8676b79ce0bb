package services

import (
	"fmt"

	"backend/internal/domain/models"
	"backend/internal/repositories"
)

// LayoutFor derives the ordered addressable seat set from the bus's layout
// descriptor. Seats are never stored as rows; this enumeration is the
// inventory.
//
// seater: rows × seatsPerRow grid, address {row}{A..}.
// sleeper: lower and upper berth per row ({row}L, {row}U), plus side berths
// ({row}SL, {row}SU) for the first half of the rows.
func LayoutFor(bus models.Bus) []string {
	layout := bus.Layout
	if layout.Rows <= 0 {
		return []string{}
	}

	switch layout.Family {
	case models.LayoutSleeper:
		seats := make([]string, 0, layout.Rows*4)
		half := layout.Rows / 2
		for row := 1; row <= layout.Rows; row++ {
			seats = append(seats, fmt.Sprintf("%dL", row), fmt.Sprintf("%dU", row))
			if row <= half {
				seats = append(seats, fmt.Sprintf("%dSL", row), fmt.Sprintf("%dSU", row))
			}
		}
		return seats
	default:
		// seater covers the "2+2" and "2+1" configurations: the addressing
		// rule is the same, only seatsPerRow differs.
		if layout.SeatsPerRow <= 0 || layout.SeatsPerRow > 26 {
			return []string{}
		}
		seats := make([]string, 0, layout.Rows*layout.SeatsPerRow)
		for row := 1; row <= layout.Rows; row++ {
			for col := 0; col < layout.SeatsPerRow; col++ {
				seats = append(seats, fmt.Sprintf("%d%c", row, 'A'+col))
			}
		}
		return seats
	}
}

// SeatService derives per-trip seat availability from booking state.
type SeatService struct {
	Trips    repositories.TripRepository
	Buses    repositories.BusRepository
	Bookings repositories.BookingRepository

	// Test injection points.
	LoadTrip   func(id int64) (models.Trip, error)
	LoadBus    func(id int64) (models.Bus, error)
	TakenSeats func(tripID int64, serviceDate string) ([]string, error)
}

func (s SeatService) loadTrip(id int64) (models.Trip, error) {
	if s.LoadTrip != nil {
		return s.LoadTrip(id)
	}
	return s.Trips.GetByID(id)
}

func (s SeatService) loadBus(id int64) (models.Bus, error) {
	if s.LoadBus != nil {
		return s.LoadBus(id)
	}
	return s.Buses.GetByID(id)
}

func (s SeatService) taken(tripID int64, serviceDate string) ([]string, error) {
	if s.TakenSeats != nil {
		return s.TakenSeats(tripID, serviceDate)
	}
	return s.Bookings.SeatsTaken(tripID, serviceDate)
}

// AvailableSeats is the full layout minus seats held by pending or confirmed
// bookings for the trip's service date.
func (s SeatService) AvailableSeats(tripID int64) ([]string, error) {
	trip, err := s.loadTrip(tripID)
	if err != nil {
		return nil, err
	}
	bus, err := s.loadBus(trip.BusID)
	if err != nil {
		return nil, err
	}

	taken, err := s.taken(trip.ID, trip.ServiceDate)
	if err != nil {
		return nil, err
	}
	held := make(map[string]bool, len(taken))
	for _, seat := range taken {
		held[seat] = true
	}

	layout := LayoutFor(bus)
	out := make([]string, 0, len(layout))
	for _, seat := range layout {
		if !held[seat] {
			out = append(out, seat)
		}
	}
	return out, nil
}

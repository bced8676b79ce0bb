package services

import (
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

const maxDriverDutyMinutes = 8 * 60

// Window is a same-day [start, end) interval in minutes past midnight.
type Window struct {
	StartMin int
	EndMin   int
}

// ParseWindow builds a Window from "HH:MM" clock strings. Overnight windows
// (end not after start) are rejected; a trip lives within one service date.
func ParseWindow(startTime, endTime string) (Window, error) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return Window{}, domain.ValidationError{Field: "startTime", Msg: err.Error()}
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return Window{}, domain.ValidationError{Field: "endTime", Msg: err.Error()}
	}
	if end <= start {
		return Window{}, domain.ValidationError{Field: "endTime", Msg: "must be after startTime"}
	}
	return Window{StartMin: start, EndMin: end}, nil
}

// Overlaps is the half-open interval test: a.start < b.end && b.start < a.end.
func (w Window) Overlaps(o Window) bool {
	return w.StartMin < o.EndMin && o.StartMin < w.EndMin
}

// Minutes is the window duration.
func (w Window) Minutes() int {
	return w.EndMin - w.StartMin
}

func tripWindow(t models.Trip) (Window, bool) {
	w, err := ParseWindow(t.StartTime, t.EndTime)
	if err != nil {
		return Window{}, false
	}
	return w, true
}

// BusAvailable decides bus feasibility for a window: compliant, idle, and no
// overlapping committed trip. Returns the blocking reason when unavailable.
func BusAvailable(bus models.Bus, committed []models.Trip, w Window, now time.Time) (bool, string) {
	if issues := bus.ComplianceIssues(now); len(issues) > 0 {
		return false, issues[0]
	}
	switch bus.Status {
	case models.BusMaintenance, models.BusRetired:
		return false, "bus is " + bus.Status
	}
	for _, t := range committed {
		if t.Status == models.TripCompleted {
			continue
		}
		if tw, ok := tripWindow(t); ok && tw.Overlaps(w) {
			return false, fmt.Sprintf("overlaps trip %d", t.ID)
		}
	}
	return true, ""
}

// DriverAvailable enforces the daily duty-hour limit: committed hours plus
// this window must not exceed 8. Exactly 8.0 hours is allowed.
func DriverAvailable(driver models.Driver, committed []models.Trip, w Window) (bool, string) {
	if !driver.Active {
		return false, "driver inactive"
	}
	total := w.Minutes()
	for _, t := range committed {
		if tw, ok := tripWindow(t); ok {
			total += tw.Minutes()
		}
	}
	if total > maxDriverDutyMinutes {
		return false, fmt.Sprintf("duty hours exceeded (%.1fh committed)", float64(total-w.Minutes())/60)
	}
	return true, ""
}

// ConductorAvailable requires no overlapping committed trip on the date.
func ConductorAvailable(conductor models.Conductor, committed []models.Trip, w Window) (bool, string) {
	if !conductor.Active {
		return false, "conductor inactive"
	}
	for _, t := range committed {
		if t.Status == models.TripCompleted {
			continue
		}
		if tw, ok := tripWindow(t); ok && tw.Overlaps(w) {
			return false, fmt.Sprintf("overlaps trip %d", t.ID)
		}
	}
	return true, ""
}

// AvailabilityService answers feasibility questions against the committed
// trip state. It loads a bounded candidate snapshot and applies the pure
// predicates above, so ordering and tie-breaks stay in-process and testable.
type AvailabilityService struct {
	Buses      repositories.BusRepository
	Drivers    repositories.DriverRepository
	Conductors repositories.ConductorRepository
	Trips      repositories.TripRepository

	// Commitments overrides the committed-trip lookup in tests.
	Commitments func(kind domain.ResourceKind, resourceID int64, serviceDate string) ([]models.Trip, error)
	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s AvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AvailabilityService) committed(kind domain.ResourceKind, id int64, serviceDate string) ([]models.Trip, error) {
	if s.Commitments != nil {
		return s.Commitments(kind, id, serviceDate)
	}
	return s.Trips.ListCommitted(kind, id, serviceDate)
}

// IsAvailable is the read-side feasibility check for one resource/window.
func (s AvailabilityService) IsAvailable(kind domain.ResourceKind, resourceID int64, serviceDate string, w Window) (bool, string, error) {
	committed, err := s.committed(kind, resourceID, serviceDate)
	if err != nil {
		return false, "", err
	}

	switch kind {
	case domain.ResourceBus:
		bus, err := s.Buses.GetByID(resourceID)
		if err != nil {
			return false, "", err
		}
		ok, reason := BusAvailable(bus, committed, w, s.now())
		return ok, reason, nil
	case domain.ResourceDriver:
		driver, err := s.Drivers.GetByID(resourceID)
		if err != nil {
			return false, "", err
		}
		ok, reason := DriverAvailable(driver, committed, w)
		return ok, reason, nil
	case domain.ResourceConductor:
		conductor, err := s.Conductors.GetByID(resourceID)
		if err != nil {
			return false, "", err
		}
		ok, reason := ConductorAvailable(conductor, committed, w)
		return ok, reason, nil
	default:
		return false, "", domain.ValidationError{Field: "resource_kind", Msg: fmt.Sprintf("unknown kind %q", kind)}
	}
}

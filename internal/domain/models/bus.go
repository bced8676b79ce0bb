package models

import "time"

// Bus status values.
const (
	BusIdle        = "idle"
	BusAssigned    = "assigned"
	BusMaintenance = "maintenance"
	BusRetired     = "retired"
)

// Seat layout families. The "2+2" and "2+1" configurations from older data
// both reduce to the seater family: only seatsPerRow differs, the addressing
// rule is identical.
const (
	LayoutSeater  = "seater"
	LayoutSleeper = "sleeper"
)

// SeatLayout is the descriptor seat addresses are derived from. Seats are
// never persisted as rows; the layout is the single source of the addressable
// set.
type SeatLayout struct {
	Family      string `json:"family"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
}

// Bus is a schedulable vehicle with compliance attributes.
type Bus struct {
	ID              int64      `json:"id"`
	BusNumber       string     `json:"busNumber"`
	DepotID         int64      `json:"depotId"`
	BusType         string     `json:"busType"`
	CapacityTotal   int        `json:"capacityTotal"`
	Layout          SeatLayout `json:"seatLayout"`
	InsuranceExpiry *time.Time `json:"insuranceExpiry,omitempty"`
	FitnessExpiry   *time.Time `json:"fitnessExpiry,omitempty"`
	MaintenanceDue  bool       `json:"maintenanceDue"`
	Status          string     `json:"status"`
	CreatedAt       string     `json:"createdAt,omitempty"`
}

// ComplianceIssues lists why the bus is unfit for assignment at the given
// instant. Empty result means compliant.
func (b Bus) ComplianceIssues(now time.Time) []string {
	var issues []string
	if b.InsuranceExpiry != nil && !b.InsuranceExpiry.After(now) {
		issues = append(issues, "insurance expired")
	}
	if b.FitnessExpiry != nil && !b.FitnessExpiry.After(now) {
		issues = append(issues, "fitness certificate expired")
	}
	if b.MaintenanceDue {
		issues = append(issues, "maintenance due")
	}
	return issues
}

// IsCompliant reports whether the bus may be assigned to a trip.
func (b Bus) IsCompliant(now time.Time) bool {
	return len(b.ComplianceIssues(now)) == 0
}

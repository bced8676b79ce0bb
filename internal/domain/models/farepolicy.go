package models

import "time"

// Time-of-day buckets used by policy multipliers.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

// Discount kinds.
const (
	DiscountPercentage = "percentage"
	DiscountFlat       = "flat"
)

// Discount conditions. Empty condition means always applicable within the
// validity window.
const (
	CondAdvanceBooking = "advance_booking"
	CondStudent        = "student"
	CondSenior         = "senior"
)

// DistanceBracket prices a contiguous km range with its own rate. Brackets
// are ordered and non-overlapping; bounds are inclusive.
type DistanceBracket struct {
	FromKm    float64 `json:"fromKm"`
	ToKm      float64 `json:"toKm"`
	RatePerKm float64 `json:"ratePerKm"`
}

// Discount is a named reduction applied after multipliers. Percentage
// discounts compound against the running total; flat discounts subtract a
// fixed amount.
type Discount struct {
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	Value     float64    `json:"value"`
	Condition string     `json:"condition,omitempty"`
	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`
}

// FarePolicy is the pricing rule set for one (busType, routeType) pair.
// At most one policy should be active for a pair at any instant; the resolver
// breaks ties by latest effectiveFrom.
type FarePolicy struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	BusType           string             `json:"busType"`
	RouteType         string             `json:"routeType"`
	MinimumFare       float64            `json:"minimumFare"`
	MaximumFare       float64            `json:"maximumFare"` // 0 means no ceiling
	RatePerKm         float64            `json:"ratePerKm"`
	Brackets          []DistanceBracket  `json:"distanceBrackets,omitempty"`
	TimeMultipliers   map[string]float64 `json:"timeMultipliers,omitempty"`
	SeasonMultipliers map[string]float64 `json:"seasonMultipliers,omitempty"`
	Discounts         []Discount         `json:"discounts,omitempty"`
	Active            bool               `json:"active"`
	EffectiveFrom     time.Time          `json:"effectiveFrom"`
	EffectiveTo       *time.Time         `json:"effectiveTo,omitempty"`
}

// ActiveAt reports whether the policy's validity window contains the instant.
func (p FarePolicy) ActiveAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.EffectiveFrom) {
		return false
	}
	if p.EffectiveTo != nil && now.After(*p.EffectiveTo) {
		return false
	}
	return true
}

// RateFor returns the per-km rate for the distance: the containing bracket's
// rate, or the policy's flat rate when no bracket matches.
func (p FarePolicy) RateFor(distanceKm float64) float64 {
	for _, b := range p.Brackets {
		if distanceKm >= b.FromKm && distanceKm <= b.ToKm {
			return b.RatePerKm
		}
	}
	return p.RatePerKm
}

// TimeMultiplier returns the configured multiplier for a time-of-day bucket,
// defaulting to 1.0.
func (p FarePolicy) TimeMultiplier(bucket string) float64 {
	if m, ok := p.TimeMultipliers[bucket]; ok && m > 0 {
		return m
	}
	return 1.0
}

// SeasonMultiplier returns the configured multiplier for a season, defaulting
// to 1.0.
func (p FarePolicy) SeasonMultiplier(season string) float64 {
	if m, ok := p.SeasonMultipliers[season]; ok && m > 0 {
		return m
	}
	return 1.0
}

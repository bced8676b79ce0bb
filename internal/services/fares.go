package services

import (
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// FareContext carries the pricing context for one quote.
type FareContext struct {
	TimeOfDay      string `json:"timeOfDay"`
	Season         string `json:"season"`
	AdvanceBooking bool   `json:"advanceBooking"`
	PassengerType  string `json:"passengerType"`
}

// AppliedDiscount records one discount applied during resolution.
type AppliedDiscount struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
}

// FareResult is the full breakdown of a resolved fare.
type FareResult struct {
	PolicyID         int64             `json:"policyId"`
	PolicyName       string            `json:"policyName"`
	BusType          string            `json:"busType"`
	RouteType        string            `json:"routeType"`
	DistanceKm       float64           `json:"distanceKm"`
	RatePerKm        float64           `json:"ratePerKm"`
	BaseFare         float64           `json:"baseFare"`
	TimeMultiplier   float64           `json:"timeMultiplier"`
	SeasonMultiplier float64           `json:"seasonMultiplier"`
	Discounts        []AppliedDiscount `json:"appliedDiscounts,omitempty"`
	MinimumFare      float64           `json:"minimumFare"`
	FinalFare        float64           `json:"finalFare"`
}

// FareService is the fare policy resolver. Pure over policy + context: it
// never writes and never invents a default when no policy matches.
type FareService struct {
	PolicyRepo repositories.FarePolicyRepository
	RequestID  string

	// ListPolicies overrides the repository lookup in tests.
	ListPolicies func(busType, routeType string) ([]models.FarePolicy, error)
	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s FareService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s FareService) policies(busType, routeType string) ([]models.FarePolicy, error) {
	if s.ListPolicies != nil {
		return s.ListPolicies(busType, routeType)
	}
	return s.PolicyRepo.ListForPair(busType, routeType)
}

// ResolveFare selects the active policy for (busType, routeType) and prices
// distanceKm under it. When several policies are active, the one with the
// latest effectiveFrom wins.
func (s FareService) ResolveFare(busType, routeType string, distanceKm float64, ctx FareContext) (FareResult, error) {
	if distanceKm <= 0 {
		return FareResult{}, domain.ValidationError{Field: "distanceKm", Msg: "must be positive"}
	}

	candidates, err := s.policies(busType, routeType)
	if err != nil {
		return FareResult{}, err
	}

	now := s.now()
	var policy *models.FarePolicy
	for i := range candidates {
		p := candidates[i]
		if !p.ActiveAt(now) {
			continue
		}
		if policy == nil || p.EffectiveFrom.After(policy.EffectiveFrom) {
			policy = &candidates[i]
		}
	}
	if policy == nil {
		return FareResult{}, domain.PolicyMissingError{BusType: busType, RouteType: routeType}
	}

	rate := policy.RateFor(distanceKm)
	base := distanceKm * rate

	timeMul := policy.TimeMultiplier(ctx.TimeOfDay)
	seasonMul := policy.SeasonMultiplier(ctx.Season)
	running := base * timeMul * seasonMul

	var applied []AppliedDiscount
	for _, d := range policy.Discounts {
		if !discountEligible(d, ctx, now) {
			continue
		}
		var amount float64
		switch d.Kind {
		case models.DiscountPercentage:
			amount = running * d.Value / 100
		case models.DiscountFlat:
			amount = d.Value
		default:
			continue
		}
		running -= amount
		applied = append(applied, AppliedDiscount{Name: d.Name, Kind: d.Kind, Amount: utils.RoundPaise(amount)})
	}

	if running < policy.MinimumFare {
		running = policy.MinimumFare
	}
	if policy.MaximumFare > 0 && running > policy.MaximumFare {
		running = policy.MaximumFare
	}

	utils.LogEvent(s.RequestID, "fare", "resolve",
		fmt.Sprintf("policy_id=%d bus_type=%s route_type=%s distance_km=%.1f fare=%.2f",
			policy.ID, busType, routeType, distanceKm, running))

	return FareResult{
		PolicyID:         policy.ID,
		PolicyName:       policy.Name,
		BusType:          busType,
		RouteType:        routeType,
		DistanceKm:       distanceKm,
		RatePerKm:        rate,
		BaseFare:         utils.RoundPaise(base),
		TimeMultiplier:   timeMul,
		SeasonMultiplier: seasonMul,
		Discounts:        applied,
		MinimumFare:      policy.MinimumFare,
		FinalFare:        utils.RoundPaise(running),
	}, nil
}

func discountEligible(d models.Discount, ctx FareContext, now time.Time) bool {
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return false
	}
	switch d.Condition {
	case models.CondAdvanceBooking:
		return ctx.AdvanceBooking
	case models.CondStudent:
		return ctx.PassengerType == models.PassengerStudent
	case models.CondSenior:
		return ctx.PassengerType == models.PassengerSenior
	case "":
		return true
	default:
		return false
	}
}

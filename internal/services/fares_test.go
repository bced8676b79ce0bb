package services

import (
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

var fareTestNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func fixedFareClock() time.Time { return fareTestNow }

func ordinaryPolicy() models.FarePolicy {
	return models.FarePolicy{
		ID:            1,
		Name:          "City / Ordinary",
		BusType:       "City / Ordinary",
		RouteType:     "intercity",
		MinimumFare:   12,
		RatePerKm:     1.8,
		Active:        true,
		EffectiveFrom: fareTestNow.AddDate(0, -1, 0),
	}
}

func fareService(policies ...models.FarePolicy) FareService {
	return FareService{
		ListPolicies: func(busType, routeType string) ([]models.FarePolicy, error) {
			return policies, nil
		},
		Now: fixedFareClock,
	}
}

func TestResolveFareFlatRate(t *testing.T) {
	svc := fareService(ordinaryPolicy())

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BaseFare != 180 {
		t.Fatalf("base fare: got %.2f want 180", result.BaseFare)
	}
	if result.FinalFare != 180 {
		t.Fatalf("final fare: got %.2f want 180", result.FinalFare)
	}
	if result.PolicyID != 1 {
		t.Fatalf("policy id: got %d want 1", result.PolicyID)
	}
}

func TestResolveFareNoActivePolicy(t *testing.T) {
	svc := fareService()

	_, err := svc.ResolveFare("Super Deluxe", "intercity", 50, FareContext{})
	if !domain.IsPolicyMissing(err) {
		t.Fatalf("expected PolicyMissingError, got %v", err)
	}
}

func TestResolveFareInactivePolicySkipped(t *testing.T) {
	p := ordinaryPolicy()
	p.Active = false
	svc := fareService(p)

	if _, err := svc.ResolveFare("City / Ordinary", "intercity", 50, FareContext{}); !domain.IsPolicyMissing(err) {
		t.Fatalf("expected PolicyMissingError, got %v", err)
	}
}

func TestResolveFareExpiredPolicySkipped(t *testing.T) {
	p := ordinaryPolicy()
	to := fareTestNow.AddDate(0, 0, -1)
	p.EffectiveTo = &to
	svc := fareService(p)

	if _, err := svc.ResolveFare("City / Ordinary", "intercity", 50, FareContext{}); !domain.IsPolicyMissing(err) {
		t.Fatalf("expected PolicyMissingError, got %v", err)
	}
}

func TestResolveFareLatestEffectiveFromWins(t *testing.T) {
	older := ordinaryPolicy()
	older.ID = 1
	older.RatePerKm = 1.5
	older.EffectiveFrom = fareTestNow.AddDate(0, -6, 0)

	newer := ordinaryPolicy()
	newer.ID = 2
	newer.RatePerKm = 2.0
	newer.EffectiveFrom = fareTestNow.AddDate(0, -1, 0)

	svc := fareService(older, newer)

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 10, FareContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PolicyID != 2 {
		t.Fatalf("tie-break picked policy %d, want 2", result.PolicyID)
	}
	if result.FinalFare != 20 {
		t.Fatalf("final fare: got %.2f want 20", result.FinalFare)
	}
}

func TestResolveFareBracketBoundsInclusive(t *testing.T) {
	p := ordinaryPolicy()
	p.MinimumFare = 0
	p.Brackets = []models.DistanceBracket{
		{FromKm: 0, ToKm: 50, RatePerKm: 2.0},
		{FromKm: 51, ToKm: 200, RatePerKm: 1.5},
	}
	svc := fareService(p)

	cases := []struct {
		distance float64
		want     float64
	}{
		{50, 100},    // upper bound of first bracket
		{51, 76.5},   // lower bound of second bracket
		{200, 300},   // upper bound of second bracket
		{250, 450},   // outside all brackets, flat rate 1.8
	}
	for _, tc := range cases {
		result, err := svc.ResolveFare("City / Ordinary", "intercity", tc.distance, FareContext{})
		if err != nil {
			t.Fatalf("distance %.0f: unexpected error: %v", tc.distance, err)
		}
		if result.FinalFare != tc.want {
			t.Fatalf("distance %.0f: got %.2f want %.2f", tc.distance, result.FinalFare, tc.want)
		}
	}
}

func TestResolveFareMultipliersApplied(t *testing.T) {
	p := ordinaryPolicy()
	p.MinimumFare = 0
	p.TimeMultipliers = map[string]float64{models.TimeNight: 1.25}
	p.SeasonMultipliers = map[string]float64{"festival": 1.2}
	svc := fareService(p)

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{
		TimeOfDay: models.TimeNight,
		Season:    "festival",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 100 * 1.8 * 1.25 * 1.2 = 270
	if result.FinalFare != 270 {
		t.Fatalf("final fare: got %.2f want 270", result.FinalFare)
	}
}

func TestResolveFareDiscountsCompoundInOrder(t *testing.T) {
	p := ordinaryPolicy()
	p.MinimumFare = 0
	p.Discounts = []models.Discount{
		{Name: "advance", Kind: models.DiscountPercentage, Value: 10, Condition: models.CondAdvanceBooking},
		{Name: "festival flat", Kind: models.DiscountFlat, Value: 20},
	}
	svc := fareService(p)

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{AdvanceBooking: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 180 - 18 (10%) - 20 flat = 142
	if result.FinalFare != 142 {
		t.Fatalf("final fare: got %.2f want 142", result.FinalFare)
	}
	if len(result.Discounts) != 2 {
		t.Fatalf("applied discounts: got %d want 2", len(result.Discounts))
	}
	if result.Discounts[0].Amount != 18 {
		t.Fatalf("percentage amount: got %.2f want 18", result.Discounts[0].Amount)
	}
}

func TestResolveFareConditionalDiscountsGated(t *testing.T) {
	p := ordinaryPolicy()
	p.MinimumFare = 0
	p.Discounts = []models.Discount{
		{Name: "student", Kind: models.DiscountPercentage, Value: 50, Condition: models.CondStudent},
	}
	svc := fareService(p)

	adult, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{PassengerType: models.PassengerAdult})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adult.FinalFare != 180 {
		t.Fatalf("adult fare: got %.2f want 180", adult.FinalFare)
	}

	student, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{PassengerType: models.PassengerStudent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.FinalFare != 90 {
		t.Fatalf("student fare: got %.2f want 90", student.FinalFare)
	}
}

func TestResolveFareDiscountValidityWindow(t *testing.T) {
	p := ordinaryPolicy()
	p.MinimumFare = 0
	expired := fareTestNow.AddDate(0, 0, -1)
	p.Discounts = []models.Discount{
		{Name: "lapsed", Kind: models.DiscountFlat, Value: 50, ValidTo: &expired},
	}
	svc := fareService(p)

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalFare != 180 {
		t.Fatalf("expired discount applied: got %.2f want 180", result.FinalFare)
	}
}

func TestResolveFareClampedToMinimum(t *testing.T) {
	p := ordinaryPolicy()
	p.MinimumFare = 15
	svc := fareService(p)

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 2, FareContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2 * 1.8 = 3.6, below the floor
	if result.FinalFare != 15 {
		t.Fatalf("final fare: got %.2f want minimum 15", result.FinalFare)
	}
}

func TestResolveFareClampedToMaximum(t *testing.T) {
	p := ordinaryPolicy()
	p.MaximumFare = 100
	svc := fareService(p)

	result, err := svc.ResolveFare("City / Ordinary", "intercity", 100, FareContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalFare != 100 {
		t.Fatalf("final fare: got %.2f want ceiling 100", result.FinalFare)
	}
}

func TestResolveFareRejectsNonPositiveDistance(t *testing.T) {
	svc := fareService(ordinaryPolicy())

	if _, err := svc.ResolveFare("City / Ordinary", "intercity", 0, FareContext{}); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPolicyBusTypeFallback(t *testing.T) {
	if got := PolicyBusType("ordinary"); got != "City / Ordinary" {
		t.Fatalf("ordinary mapped to %q", got)
	}
	if got := PolicyBusType("garuda_volvo"); got != "Luxury / Hi-tech & AC" {
		t.Fatalf("garuda_volvo mapped to %q", got)
	}
	if got := PolicyBusType("hovercraft"); got != "City / Ordinary" {
		t.Fatalf("unknown type should fall back, got %q", got)
	}
}

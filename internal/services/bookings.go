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

// Early-booking discount tiers, strict greater-than on hours to departure.
type earlyBookingTier struct {
	hoursAbove float64
	rate       float64
}

var earlyBookingTiers = []earlyBookingTier{
	{168, 0.15},
	{72, 0.10},
	{24, 0.05},
}

// EarlyBookingRate returns the discount fraction for the time remaining
// before departure.
func EarlyBookingRate(hoursToDeparture float64) float64 {
	for _, tier := range earlyBookingTiers {
		if hoursToDeparture > tier.hoursAbove {
			return tier.rate
		}
	}
	return 0
}

// RefundResult is the outcome of the cancellation calculator.
type RefundResult struct {
	RefundAmount       float64 `json:"refundAmount"`
	CancellationCharge float64 `json:"cancellationCharge"`
}

// CalculateRefund derives refund and charge from persisted booking state.
// Pure: the caller applies the result. The charge is a fraction of the total;
// the refund is what was paid minus the charge, kept within [0, total].
func CalculateRefund(b models.Booking, feeRate float64) RefundResult {
	charge := utils.RoundRupee(b.Pricing.Total * feeRate)
	refund := b.Pricing.Paid - charge
	if refund < 0 {
		refund = 0
	}
	if refund > b.Pricing.Total {
		refund = b.Pricing.Total
	}
	return RefundResult{RefundAmount: refund, CancellationCharge: charge}
}

// CreateBookingRequest is the booking input.
type CreateBookingRequest struct {
	TripID    int64            `json:"tripId" binding:"required"`
	Seats     []string         `json:"seats" binding:"required"`
	Passenger models.Passenger `json:"passenger"`
	Season    string           `json:"season,omitempty"`
}

// BookingService accepts bookings against scheduled trips with all-or-nothing
// seat reservation.
type BookingService struct {
	DB       *sql.DB
	Trips    repositories.TripRepository
	Buses    repositories.BusRepository
	Routes   repositories.RouteRepository
	Bookings repositories.BookingRepository
	Fares    FareService
	Notify   NotifyService

	TaxRate             float64
	CancellationFeeRate float64
	RequestID           string

	// Test injection points; nil means use the repositories above.
	LoadTrip    func(id int64) (models.Trip, error)
	LoadBus     func(id int64) (models.Bus, error)
	LoadRoute   func(id int64) (models.Route, error)
	LoadBooking func(id int64) (models.Booking, error)
	TakenSeats  func(tripID int64, serviceDate string) ([]string, error)
	Persist     func(b models.Booking) (int64, error)
	Now         func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) loadTrip(id int64) (models.Trip, error) {
	if s.LoadTrip != nil {
		return s.LoadTrip(id)
	}
	return s.Trips.GetByID(id)
}

func (s BookingService) loadBus(id int64) (models.Bus, error) {
	if s.LoadBus != nil {
		return s.LoadBus(id)
	}
	return s.Buses.GetByID(id)
}

func (s BookingService) loadRoute(id int64) (models.Route, error) {
	if s.LoadRoute != nil {
		return s.LoadRoute(id)
	}
	return s.Routes.GetByID(id)
}

func (s BookingService) loadBooking(id int64) (models.Booking, error) {
	if s.LoadBooking != nil {
		return s.LoadBooking(id)
	}
	return s.Bookings.GetByID(id)
}

func (s BookingService) taken(tripID int64, serviceDate string) ([]string, error) {
	if s.TakenSeats != nil {
		return s.TakenSeats(tripID, serviceDate)
	}
	return s.Bookings.SeatsTaken(tripID, serviceDate)
}

func (s BookingService) persist(b models.Booking) (int64, error) {
	if s.Persist != nil {
		return s.Persist(b)
	}
	var id int64
	err := intdb.WithTx(s.DB, func(tx *sql.Tx) error {
		var err error
		id, err = s.Bookings.InsertTx(tx, b)
		return err
	})
	return id, err
}

func (s BookingService) taxRate() float64 {
	if s.TaxRate > 0 {
		return s.TaxRate
	}
	return 0.18
}

func (s BookingService) feeRate() float64 {
	if s.CancellationFeeRate > 0 {
		return s.CancellationFeeRate
	}
	return 0.10
}

// CreateBooking validates seats, prices the request and persists the booking
// with status pending. The whole request fails when any one seat is taken; no
// partial grant ever happens.
func (s BookingService) CreateBooking(req CreateBookingRequest) (models.Booking, error) {
	seats := utils.NormalizeSeatList(req.Seats)
	if len(seats) == 0 {
		return models.Booking{}, domain.ValidationError{Field: "seats", Msg: "at least one seat required"}
	}
	if utils.TrimOrEmpty(req.Passenger.Name) == "" {
		return models.Booking{}, domain.ValidationError{Field: "passenger.name", Msg: "required"}
	}
	passengerType := req.Passenger.Type
	if passengerType == "" {
		passengerType = models.PassengerAdult
	}

	trip, err := s.loadTrip(req.TripID)
	if err != nil {
		return models.Booking{}, err
	}
	if !trip.IsBookable() {
		return models.Booking{}, domain.ConflictError{Resource: "trip", Msg: "not open for booking"}
	}

	bus, err := s.loadBus(trip.BusID)
	if err != nil {
		return models.Booking{}, err
	}
	route, err := s.loadRoute(trip.RouteID)
	if err != nil {
		return models.Booking{}, err
	}

	// The availability read and the insert must be atomic per trip/date.
	unlock := bookingLocks.Lock(fmt.Sprintf("booking:%d:%s", trip.ID, trip.ServiceDate))
	defer unlock()

	takenSeats, err := s.taken(trip.ID, trip.ServiceDate)
	if err != nil {
		return models.Booking{}, err
	}
	available := map[string]bool{}
	for _, seat := range LayoutFor(bus) {
		available[seat] = true
	}
	for _, seat := range takenSeats {
		delete(available, seat)
	}
	for _, seat := range seats {
		if !available[seat] {
			return models.Booking{}, domain.SeatUnavailableError{Seat: seat}
		}
	}

	now := s.now()
	departure, err := utils.CombineDateClock(trip.ServiceDate, trip.StartTime)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "trip has malformed schedule", Err: err}
	}
	hoursToDeparture := departure.Sub(now).Hours()

	fare, err := s.Fares.ResolveFare(PolicyBusType(bus.BusType), route.RouteType, route.TotalDistanceKm, FareContext{
		TimeOfDay:      utils.TimeOfDayBucket(trip.StartTime),
		Season:         req.Season,
		AdvanceBooking: EarlyBookingRate(hoursToDeparture) > 0,
		PassengerType:  passengerType,
	})
	if err != nil {
		return models.Booking{}, err
	}

	pricing := buildPricing(fare.FinalFare, len(seats), hoursToDeparture, s.taxRate())

	booking := models.Booking{
		TripID:      trip.ID,
		ServiceDate: trip.ServiceDate,
		Seats:       seats,
		Passenger: models.Passenger{
			Name:  utils.TrimOrEmpty(req.Passenger.Name),
			Phone: utils.TrimOrEmpty(req.Passenger.Phone),
			Email: utils.TrimOrEmpty(req.Passenger.Email),
			Type:  passengerType,
		},
		Pricing: pricing,
		Status:  models.BookingPending,
	}

	id, err := s.persist(booking)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			// Lost the storage-level race: another booking holds a seat.
			return models.Booking{}, domain.SeatUnavailableError{}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	booking.ID = id

	utils.LogEvent(s.RequestID, "booking", "created",
		fmt.Sprintf("booking_id=%d trip_id=%d seats=%d total=%.2f", id, trip.ID, len(seats), pricing.Total))
	return booking, nil
}

// buildPricing applies the early-booking discount to the gross fare, then tax
// on the discounted amount, rounding to whole rupees and flooring at zero.
func buildPricing(perSeatFare float64, seatCount int, hoursToDeparture, taxRate float64) models.Pricing {
	gross := utils.RoundPaise(perSeatFare * float64(seatCount))
	discount := utils.RoundRupee(gross * EarlyBookingRate(hoursToDeparture))
	pretax := gross - discount
	tax := utils.RoundRupee(pretax * taxRate)
	total := utils.RoundRupee(pretax + tax)
	if total < 0 {
		total = 0
	}
	return models.Pricing{
		BaseFare: gross,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

// ConfirmBooking records the payment outcome. Allowed only from pending.
func (s BookingService) ConfirmBooking(bookingID int64, paymentRef string) (models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !booking.CanTransition(models.BookingConfirmed) {
		return models.Booking{}, domain.InvalidTransitionError{Entity: "booking", From: booking.Status, To: models.BookingConfirmed}
	}

	if err := s.Bookings.Confirm(bookingID, paymentRef, booking.Pricing.Total); err != nil {
		return models.Booking{}, err
	}
	booking.Status = models.BookingConfirmed
	booking.PaymentRef = paymentRef
	booking.Pricing.Paid = booking.Pricing.Total

	// Delivery failures must not roll back the booking.
	s.Notify.BookingConfirmed(booking)
	return booking, nil
}

// CancelBooking computes the refund and releases the seats. Allowed from
// pending or confirmed, only while the trip has not departed.
func (s BookingService) CancelBooking(bookingID int64, reason string) (models.Booking, RefundResult, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return models.Booking{}, RefundResult{}, err
	}
	if !booking.CanTransition(models.BookingCancelled) {
		return models.Booking{}, RefundResult{}, domain.InvalidTransitionError{Entity: "booking", From: booking.Status, To: models.BookingCancelled}
	}

	trip, err := s.loadTrip(booking.TripID)
	if err != nil {
		return models.Booking{}, RefundResult{}, err
	}
	now := s.now()
	departure, err := utils.CombineDateClock(trip.ServiceDate, trip.StartTime)
	if err == nil && !now.Before(departure) {
		return models.Booking{}, RefundResult{}, domain.ConflictError{Resource: "booking", Msg: "trip has already departed"}
	}

	refund := CalculateRefund(booking, s.feeRate())

	err = intdb.WithTx(s.DB, func(tx *sql.Tx) error {
		return s.Bookings.CancelTx(tx, bookingID, reason, refund.CancellationCharge, refund.RefundAmount, now)
	})
	if err != nil {
		return models.Booking{}, RefundResult{}, err
	}

	booking.Status = models.BookingCancelled
	booking.Pricing.Refunded = refund.RefundAmount
	booking.Cancellation = &models.Cancellation{
		Reason:      reason,
		Charge:      refund.CancellationCharge,
		Refund:      refund.RefundAmount,
		CancelledAt: utils.FormatDateTime(now),
	}

	s.Notify.BookingCancelled(booking)

	utils.LogEvent(s.RequestID, "booking", "cancelled",
		fmt.Sprintf("booking_id=%d refund=%.2f charge=%.2f", bookingID, refund.RefundAmount, refund.CancellationCharge))
	return booking, refund, nil
}

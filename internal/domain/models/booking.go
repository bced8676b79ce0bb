package models

import "backend/internal/domain"

// Booking status values.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

var bookingTransitions = map[string][]string{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingCancelled: {},
}

// Passenger types accepted on a booking.
const (
	PassengerAdult   = "adult"
	PassengerStudent = "student"
	PassengerSenior  = "senior"
)

// Passenger carries the contact details attached to a booking.
type Passenger struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
}

// Pricing is the computed breakdown persisted with the booking. BaseFare is
// the pre-discount, pre-tax fare across all seats of the booking.
type Pricing struct {
	BaseFare float64 `json:"baseFare"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"totalAmount"`
	Paid     float64 `json:"paidAmount"`
	Refunded float64 `json:"refundAmount"`
}

// Cancellation fields are set exactly once, at cancellation.
type Cancellation struct {
	Reason      string  `json:"reason,omitempty"`
	Charge      float64 `json:"cancellationCharge"`
	Refund      float64 `json:"refundAmount"`
	CancelledAt string  `json:"cancelledAt,omitempty"`
}

// Booking holds a set of seat addresses on one trip for one passenger party.
type Booking struct {
	ID           int64         `json:"id"`
	TripID       int64         `json:"tripId"`
	ServiceDate  string        `json:"serviceDate"`
	Seats        []string      `json:"seats"`
	Passenger    Passenger     `json:"passenger"`
	Pricing      Pricing       `json:"pricing"`
	Status       string        `json:"status"`
	PaymentRef   string        `json:"paymentRef,omitempty"`
	Cancellation *Cancellation `json:"cancellation,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
}

// CanTransition reports whether the booking status machine allows the move.
func (b Booking) CanTransition(next string) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change.
func (b *Booking) Transition(next string) error {
	if !b.CanTransition(next) {
		return domain.InvalidTransitionError{Entity: "booking", From: b.Status, To: next}
	}
	b.Status = next
	return nil
}

package services

import (
	"fmt"

	"backend/internal/domain/models"
	"backend/internal/utils"
)

// NotifyService emits booking lifecycle events for downstream delivery.
// Emission is fire-and-forget: failures never touch the booking transaction,
// so the methods return nothing.
type NotifyService struct {
	RequestID string

	// Sink overrides event delivery in tests.
	Sink func(event string, b models.Booking)
}

func (s NotifyService) emit(event string, b models.Booking) {
	if s.Sink != nil {
		s.Sink(event, b)
		return
	}
	utils.LogEvent(s.RequestID, "notify", event,
		fmt.Sprintf("booking_id=%d trip_id=%d passenger=%s total=%.2f",
			b.ID, b.TripID, b.Passenger.Name, b.Pricing.Total))
}

func (s NotifyService) BookingConfirmed(b models.Booking) {
	s.emit("booking_confirmed", b)
}

func (s NotifyService) BookingCancelled(b models.Booking) {
	s.emit("booking_cancelled", b)
}

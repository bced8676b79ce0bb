package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingRepo() repositories.BookingRepository {
	return repositories.BookingRepository{DB: intconfig.DB}
}

func bookingService(c *gin.Context) services.BookingService {
	rid := middleware.GetRequestID(c)
	return services.BookingService{
		DB:       intconfig.DB,
		Trips:    tripRepo(),
		Buses:    busRepo(),
		Routes:   routeRepo(),
		Bookings: bookingRepo(),
		Fares: services.FareService{
			PolicyRepo: policyRepo(),
			RequestID:  rid,
		},
		Notify:              services.NotifyService{RequestID: rid},
		TaxRate:             env.TaxRate,
		CancellationFeeRate: env.CancellationFeeRate,
		RequestID:           rid,
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).CreateBooking(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := bookingRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type confirmBookingRequest struct {
	PaymentRef string `json:"paymentRef"`
}

// POST /api/bookings/:id/confirm
func ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req confirmBookingRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	booking, err := bookingService(c).ConfirmBooking(id, req.PaymentRef)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req cancelBookingRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	booking, refund, err := bookingService(c).CancelBooking(id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"refund":  refund,
	})
}

// GET /api/trips/:id/bookings?serviceDate=
func GetTripBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	serviceDate := c.Query("serviceDate")
	if serviceDate == "" {
		RespondDomainError(c, domain.ValidationError{Field: "serviceDate", Msg: "query parameter required"})
		return
	}

	bookings, err := bookingRepo().ListByTrip(id, serviceDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

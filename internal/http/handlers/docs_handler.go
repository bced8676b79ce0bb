package handlers

import (
	"net/http"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Bookings:  bookingRepo(),
		Trips:     tripRepo(),
		Routes:    routeRepo(),
		Buses:     busRepo(),
		RequestID: middleware.GetRequestID(c),
	}
}

// GetBookingETicketPDF returns the e-ticket for a confirmed booking (inline).
func GetBookingETicketPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := bookingRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.Status != models.BookingConfirmed {
		RespondDomainError(c, domain.ConflictError{Resource: "booking", Msg: "e-ticket requires a confirmed booking"})
		return
	}

	pdfBytes, filename, err := docsService(c).GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GetBookingInvoicePDF returns the invoice (inline). Cancelled bookings keep
// an invoice showing the charge and refund.
func GetBookingInvoicePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := bookingRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.Status == models.BookingPending {
		RespondDomainError(c, domain.ConflictError{Resource: "booking", Msg: "invoice requires payment confirmation"})
		return
	}

	pdfBytes, filename, err := docsService(c).GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders per-booking e-ticket and invoice PDFs.
type DocsService struct {
	Bookings  repositories.BookingRepository
	Trips     repositories.TripRepository
	Routes    repositories.RouteRepository
	Buses     repositories.BusRepository
	RequestID string

	// Loader overrides data loading in tests.
	Loader func(bookingID int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID      int64
	Status         string
	PassengerName  string
	PassengerPhone string
	Seats          []string
	RouteName      string
	From           string
	To             string
	ServiceDate    string
	StartTime      string
	BusNumber      string
	Total          float64
	Tax            float64
	Discount       float64
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return bookingDocData{}, err
	}
	out := bookingDocData{
		BookingID:      booking.ID,
		Status:         booking.Status,
		PassengerName:  booking.Passenger.Name,
		PassengerPhone: booking.Passenger.Phone,
		Seats:          booking.Seats,
		ServiceDate:    booking.ServiceDate,
		Total:          booking.Pricing.Total,
		Tax:            booking.Pricing.Tax,
		Discount:       booking.Pricing.Discount,
	}

	if trip, err := s.Trips.GetByID(booking.TripID); err == nil {
		out.StartTime = trip.StartTime
		if route, err := s.Routes.GetByID(trip.RouteID); err == nil {
			out.RouteName = route.RouteName
			out.From = route.StartPoint
			out.To = route.EndPoint
		}
		if bus, err := s.Buses.GetByID(trip.BusID); err == nil {
			out.BusNumber = bus.BusNumber
		}
	}
	return out, nil
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger    : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Phone        : %s", safe(d.PassengerPhone, "-")),
		fmt.Sprintf("Seats        : %s", safe(strings.Join(d.Seats, ", "), "-")),
		fmt.Sprintf("Route        : %s -> %s", safe(d.From, "-"), safe(d.To, "-")),
		fmt.Sprintf("Date / Time  : %s %s", safe(d.ServiceDate, "-"), safe(d.StartTime, "-")),
		fmt.Sprintf("Bus          : %s", safe(d.BusNumber, "-")),
		fmt.Sprintf("Booking Ref  : #%d", d.BookingID),
		fmt.Sprintf("Ticket Code  : TCK-%d", d.BookingID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket at boarding. Valid only for the seats listed above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Invoice No : INV-%d", d.BookingID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.PassengerName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone : %s", safe(d.PassengerPhone, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Bus ticket %s -> %s (%s %s), seats %s",
		safe(d.From, "-"), safe(d.To, "-"),
		safe(d.ServiceDate, "-"), safe(d.StartTime, "-"),
		safe(strings.Join(d.Seats, ", "), "-"),
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	if d.Discount > 0 {
		pdf.Cell(0, 6, "Discount : -"+utils.FormatINR(d.Discount))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, "Tax      : "+utils.FormatINR(d.Tax))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatINR(d.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This invoice covers all seats of the booking reference above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", d.BookingID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	s = filenameUnsafe.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "booking"
	}
	return s
}

package repositories

import (
	"database/sql"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, trip_id, service_date,
	passenger_name, passenger_phone, passenger_email, passenger_type,
	base_fare, tax, discount, total, paid, refunded,
	status, payment_ref, cancel_reason, cancel_charge,
	COALESCE(DATE_FORMAT(cancelled_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var cancelReason, cancelledAt string
	var cancelCharge float64
	err := row.Scan(
		&b.ID,
		&b.TripID,
		&b.ServiceDate,
		&b.Passenger.Name,
		&b.Passenger.Phone,
		&b.Passenger.Email,
		&b.Passenger.Type,
		&b.Pricing.BaseFare,
		&b.Pricing.Tax,
		&b.Pricing.Discount,
		&b.Pricing.Total,
		&b.Pricing.Paid,
		&b.Pricing.Refunded,
		&b.Status,
		&b.PaymentRef,
		&cancelReason,
		&cancelCharge,
		&cancelledAt,
		&b.CreatedAt,
	)
	if err != nil {
		return b, err
	}
	if b.Status == models.BookingCancelled {
		b.Cancellation = &models.Cancellation{
			Reason:      cancelReason,
			Charge:      cancelCharge,
			Refund:      b.Pricing.Refunded,
			CancelledAt: cancelledAt,
		}
	}
	return b, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	seats, err := r.SeatsForBooking(id)
	if err != nil {
		return models.Booking{}, err
	}
	b.Seats = seats
	return b, nil
}

// SeatsForBooking lists the seat addresses held by one booking.
func (r BookingRepository) SeatsForBooking(bookingID int64) ([]string, error) {
	rows, err := r.DB.Query(`SELECT seat_code FROM booking_seats WHERE booking_id=? ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, rows.Err()
}

// SeatsTaken returns every seat currently held on a trip/date. Cancelled
// bookings release their seat rows, so this table holds exactly the
// pending+confirmed union.
func (r BookingRepository) SeatsTaken(tripID int64, serviceDate string) ([]string, error) {
	rows, err := r.DB.Query(`
		SELECT seat_code FROM booking_seats
		WHERE trip_id=? AND service_date=?
		ORDER BY seat_code ASC
	`, tripID, serviceDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, rows.Err()
}

// InsertTx persists the booking and its seat rows in one transaction. A
// duplicate-key failure on booking_seats means another booking won the seat.
func (r BookingRepository) InsertTx(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings
			(trip_id, service_date,
			 passenger_name, passenger_phone, passenger_email, passenger_type,
			 base_fare, tax, discount, total, paid, refunded, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.TripID,
		b.ServiceDate,
		b.Passenger.Name,
		b.Passenger.Phone,
		b.Passenger.Email,
		b.Passenger.Type,
		b.Pricing.BaseFare,
		b.Pricing.Tax,
		b.Pricing.Discount,
		b.Pricing.Total,
		b.Pricing.Paid,
		b.Pricing.Refunded,
		b.Status,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, seat := range b.Seats {
		if _, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, trip_id, service_date, seat_code)
			VALUES (?, ?, ?, ?)
		`, id, b.TripID, b.ServiceDate, seat); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Confirm captures the payment outcome: paid becomes total, status confirmed.
func (r BookingRepository) Confirm(id int64, paymentRef string, paid float64) error {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET status=?, payment_ref=?, paid=?
		WHERE id=? AND status=?
	`, models.BookingConfirmed, paymentRef, paid, id, models.BookingPending)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "not in a confirmable state"}
	}
	return nil
}

// CancelTx marks the booking cancelled and releases its seat rows so the
// seats become immediately visible to availability reads.
func (r BookingRepository) CancelTx(tx *sql.Tx, id int64, reason string, charge, refund float64, at time.Time) error {
	res, err := tx.Exec(`
		UPDATE bookings
		SET status=?, cancel_reason=?, cancel_charge=?, refunded=?, cancelled_at=?
		WHERE id=? AND status IN (?, ?)
	`, models.BookingCancelled, reason, charge, refund, at, id, models.BookingPending, models.BookingConfirmed)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "not in a cancellable state"}
	}
	_, err = tx.Exec(`DELETE FROM booking_seats WHERE booking_id=?`, id)
	return err
}

// ListByTrip returns bookings for one trip/date, newest first.
func (r BookingRepository) ListByTrip(tripID int64, serviceDate string) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE trip_id=? AND service_date=?
		ORDER BY id DESC
	`, tripID, serviceDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

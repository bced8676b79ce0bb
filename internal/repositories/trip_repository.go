package repositories

import (
	"database/sql"
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `id, route_id, bus_id, driver_id, conductor_id, depot_id,
	service_date, start_time, end_time, capacity, fare, status,
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.RouteID,
		&t.BusID,
		&t.DriverID,
		&t.ConductorID,
		&t.DepotID,
		&t.ServiceDate,
		&t.StartTime,
		&t.EndTime,
		&t.Capacity,
		&t.Fare,
		&t.Status,
		&t.CreatedAt,
	)
	return t, err
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	row := r.DB.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// ListCommitted returns the trips that count as commitments for a resource on
// a service date. Cancelled trips never block a resource; completed trips
// still count toward driver duty hours.
func (r TripRepository) ListCommitted(kind domain.ResourceKind, resourceID int64, serviceDate string) ([]models.Trip, error) {
	var col string
	switch kind {
	case domain.ResourceBus:
		col = "bus_id"
	case domain.ResourceDriver:
		col = "driver_id"
	case domain.ResourceConductor:
		col = "conductor_id"
	default:
		return nil, domain.ValidationError{Field: "resource_kind", Msg: fmt.Sprintf("unknown kind %q", kind)}
	}

	rows, err := r.DB.Query(`
		SELECT `+tripColumns+`
		FROM trips
		WHERE `+col+`=? AND service_date=? AND status IN ('scheduled','boarding','running','completed')
		ORDER BY id ASC
	`, resourceID, serviceDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) ListByDepotDate(depotID int64, serviceDate string) ([]models.Trip, error) {
	rows, err := r.DB.Query(`
		SELECT `+tripColumns+`
		FROM trips
		WHERE depot_id=? AND service_date=?
		ORDER BY start_time ASC, id ASC
	`, depotID, serviceDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertTx writes the trip row inside the assignment transaction.
func (r TripRepository) InsertTx(tx *sql.Tx, t models.Trip) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO trips
			(route_id, bus_id, driver_id, conductor_id, depot_id,
			 service_date, start_time, end_time, capacity, fare, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.RouteID,
		t.BusID,
		t.DriverID,
		t.ConductorID,
		t.DepotID,
		t.ServiceDate,
		t.StartTime,
		t.EndTime,
		t.Capacity,
		t.Fare,
		t.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) UpdateStatus(id int64, status string) error {
	res, err := r.DB.Exec(`UPDATE trips SET status=? WHERE id=?`, status, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// CountActiveForBus counts non-terminal trips still holding the bus on a
// service date, used when deciding whether a cancelled trip frees the bus.
func (r TripRepository) CountActiveForBus(busID int64, serviceDate string, excludeTripID int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*)
		FROM trips
		WHERE bus_id=? AND service_date=? AND id<>? AND status IN ('scheduled','boarding','running')
	`, busID, serviceDate, excludeTripID).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

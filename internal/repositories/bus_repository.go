package repositories

import (
	"database/sql"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

const busColumns = `id, bus_number, depot_id, bus_type, capacity_total,
	layout_family, layout_rows, layout_seats_per_row,
	insurance_expiry, fitness_expiry, maintenance_due, status,
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanBus(row interface{ Scan(...any) error }) (models.Bus, error) {
	var b models.Bus
	var insurance, fitness sql.NullTime
	err := row.Scan(
		&b.ID,
		&b.BusNumber,
		&b.DepotID,
		&b.BusType,
		&b.CapacityTotal,
		&b.Layout.Family,
		&b.Layout.Rows,
		&b.Layout.SeatsPerRow,
		&insurance,
		&fitness,
		&b.MaintenanceDue,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		return b, err
	}
	if insurance.Valid {
		t := insurance.Time
		b.InsuranceExpiry = &t
	}
	if fitness.Valid {
		t := fitness.Time
		b.FitnessExpiry = &t
	}
	return b, nil
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	if id <= 0 {
		return models.Bus{}, domain.ValidationError{Field: "bus_id", Msg: "invalid id"}
	}
	row := r.DB.QueryRow(`SELECT `+busColumns+` FROM buses WHERE id=? LIMIT 1`, id)
	bus, err := scanBus(row)
	if err == sql.ErrNoRows {
		return models.Bus{}, domain.NotFoundError{Resource: "bus", Err: err}
	}
	if err != nil {
		return models.Bus{}, domain.InternalError{Err: err}
	}
	return bus, nil
}

// ListByDepotAndType returns the candidate pool ordered by id so that the
// greedy matcher stays reproducible.
func (r BusRepository) ListByDepotAndType(depotID int64, busType string) ([]models.Bus, error) {
	rows, err := r.DB.Query(`
		SELECT `+busColumns+`
		FROM buses
		WHERE depot_id=? AND bus_type=?
		ORDER BY id ASC
	`, depotID, busType)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, bus)
	}
	return out, rows.Err()
}

func (r BusRepository) List() ([]models.Bus, error) {
	rows, err := r.DB.Query(`SELECT ` + busColumns + ` FROM buses ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, bus)
	}
	return out, rows.Err()
}

func (r BusRepository) Create(b models.Bus) (int64, error) {
	status := b.Status
	if status == "" {
		status = models.BusIdle
	}
	res, err := r.DB.Exec(`
		INSERT INTO buses
			(bus_number, depot_id, bus_type, capacity_total,
			 layout_family, layout_rows, layout_seats_per_row,
			 insurance_expiry, fitness_expiry, maintenance_due, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.BusNumber,
		b.DepotID,
		b.BusType,
		b.CapacityTotal,
		b.Layout.Family,
		b.Layout.Rows,
		b.Layout.SeatsPerRow,
		b.InsuranceExpiry,
		b.FitnessExpiry,
		b.MaintenanceDue,
		status,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r BusRepository) UpdateStatus(id int64, status string) error {
	res, err := r.DB.Exec(`UPDATE buses SET status=? WHERE id=?`, status, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}

// UpdateStatusTx is the transactional variant used while committing a trip.
func (r BusRepository) UpdateStatusTx(tx *sql.Tx, id int64, status string) error {
	_, err := tx.Exec(`UPDATE buses SET status=? WHERE id=?`, status, id)
	return err
}

func (r BusRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM buses WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}

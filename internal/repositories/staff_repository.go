package repositories

import (
	"database/sql"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	var d models.Driver
	err := r.DB.QueryRow(`
		SELECT id, name, COALESCE(phone,''), COALESCE(license_number,''), depot_id, active,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM drivers WHERE id=? LIMIT 1
	`, id).Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.DepotID, &d.Active, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "driver", Err: err}
	}
	if err != nil {
		return d, domain.InternalError{Err: err}
	}
	return d, nil
}

// ListActiveByDepot returns active drivers ordered by id for stable matching.
func (r DriverRepository) ListActiveByDepot(depotID int64) ([]models.Driver, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(phone,''), COALESCE(license_number,''), depot_id, active,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM drivers
		WHERE depot_id=? AND active=1
		ORDER BY id ASC
	`, depotID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.DepotID, &d.Active, &d.CreatedAt); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) Create(d models.Driver) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO drivers (name, phone, license_number, depot_id, active)
		VALUES (?, ?, ?, ?, ?)
	`, d.Name, d.Phone, d.LicenseNumber, d.DepotID, d.Active)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r DriverRepository) SetActive(id int64, active bool) error {
	res, err := r.DB.Exec(`UPDATE drivers SET active=? WHERE id=?`, active, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

type ConductorRepository struct {
	DB *sql.DB
}

func (r ConductorRepository) GetByID(id int64) (models.Conductor, error) {
	var c models.Conductor
	err := r.DB.QueryRow(`
		SELECT id, name, COALESCE(phone,''), COALESCE(employee_id,''), depot_id, active,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM conductors WHERE id=? LIMIT 1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.EmployeeID, &c.DepotID, &c.Active, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, domain.NotFoundError{Resource: "conductor", Err: err}
	}
	if err != nil {
		return c, domain.InternalError{Err: err}
	}
	return c, nil
}

func (r ConductorRepository) ListActiveByDepot(depotID int64) ([]models.Conductor, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(phone,''), COALESCE(employee_id,''), depot_id, active,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM conductors
		WHERE depot_id=? AND active=1
		ORDER BY id ASC
	`, depotID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Conductor{}
	for rows.Next() {
		var c models.Conductor
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.EmployeeID, &c.DepotID, &c.Active, &c.CreatedAt); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ConductorRepository) Create(c models.Conductor) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO conductors (name, phone, employee_id, depot_id, active)
		VALUES (?, ?, ?, ?, ?)
	`, c.Name, c.Phone, c.EmployeeID, c.DepotID, c.Active)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r ConductorRepository) SetActive(id int64, active bool) error {
	res, err := r.DB.Exec(`UPDATE conductors SET active=? WHERE id=?`, active, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "conductor"}
	}
	return nil
}

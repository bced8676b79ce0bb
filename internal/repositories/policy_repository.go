package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type FarePolicyRepository struct {
	DB *sql.DB
}

const policyColumns = `id, COALESCE(name,''), bus_type, route_type,
	minimum_fare, maximum_fare, rate_per_km,
	COALESCE(brackets,'[]'), COALESCE(time_multipliers,'{}'),
	COALESCE(season_multipliers,'{}'), COALESCE(discounts,'[]'),
	active, effective_from, effective_to`

func scanPolicy(row interface{ Scan(...any) error }) (models.FarePolicy, error) {
	var p models.FarePolicy
	var brackets, timeMul, seasonMul, discounts string
	var effectiveTo sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.BusType,
		&p.RouteType,
		&p.MinimumFare,
		&p.MaximumFare,
		&p.RatePerKm,
		&brackets,
		&timeMul,
		&seasonMul,
		&discounts,
		&p.Active,
		&p.EffectiveFrom,
		&effectiveTo,
	)
	if err != nil {
		return p, err
	}
	if effectiveTo.Valid {
		t := effectiveTo.Time
		p.EffectiveTo = &t
	}
	if strings.TrimSpace(brackets) != "" {
		_ = json.Unmarshal([]byte(brackets), &p.Brackets)
	}
	if strings.TrimSpace(timeMul) != "" {
		_ = json.Unmarshal([]byte(timeMul), &p.TimeMultipliers)
	}
	if strings.TrimSpace(seasonMul) != "" {
		_ = json.Unmarshal([]byte(seasonMul), &p.SeasonMultipliers)
	}
	if strings.TrimSpace(discounts) != "" {
		_ = json.Unmarshal([]byte(discounts), &p.Discounts)
	}
	return p, nil
}

// ListForPair returns the active policies for a (busType, routeType) pair,
// newest effectiveFrom first. The resolver applies the validity-window check
// in-process so the tie-break rule stays explicit and testable.
func (r FarePolicyRepository) ListForPair(busType, routeType string) ([]models.FarePolicy, error) {
	rows, err := r.DB.Query(`
		SELECT `+policyColumns+`
		FROM fare_policies
		WHERE bus_type=? AND route_type=? AND active=1
		ORDER BY effective_from DESC, id DESC
	`, busType, routeType)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.FarePolicy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r FarePolicyRepository) GetByID(id int64) (models.FarePolicy, error) {
	row := r.DB.QueryRow(`SELECT `+policyColumns+` FROM fare_policies WHERE id=? LIMIT 1`, id)
	p, err := scanPolicy(row)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "fare policy", Err: err}
	}
	if err != nil {
		return p, domain.InternalError{Err: err}
	}
	return p, nil
}

func (r FarePolicyRepository) List() ([]models.FarePolicy, error) {
	rows, err := r.DB.Query(`SELECT ` + policyColumns + ` FROM fare_policies ORDER BY bus_type, route_type, effective_from DESC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.FarePolicy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r FarePolicyRepository) Create(p models.FarePolicy) (int64, error) {
	brackets, err := json.Marshal(p.Brackets)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	timeMul, err := json.Marshal(p.TimeMultipliers)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	seasonMul, err := json.Marshal(p.SeasonMultipliers)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	discounts, err := json.Marshal(p.Discounts)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	res, err := r.DB.Exec(`
		INSERT INTO fare_policies
			(name, bus_type, route_type, minimum_fare, maximum_fare, rate_per_km,
			 brackets, time_multipliers, season_multipliers, discounts,
			 active, effective_from, effective_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.Name,
		p.BusType,
		p.RouteType,
		p.MinimumFare,
		p.MaximumFare,
		p.RatePerKm,
		string(brackets),
		string(timeMul),
		string(seasonMul),
		string(discounts),
		p.Active,
		p.EffectiveFrom,
		p.EffectiveTo,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

// Deactivate retires a policy without deleting its pricing history.
func (r FarePolicyRepository) Deactivate(id int64) error {
	res, err := r.DB.Exec(`UPDATE fare_policies SET active=0 WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "fare policy"}
	}
	return nil
}

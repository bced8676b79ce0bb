package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

const routeColumns = `id, route_number, route_name, start_point, end_point,
	COALESCE(stops, '[]'), total_distance_km, duration_min, bus_type, route_type, fare_per_km,
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var r models.Route
	var stopsJSON string
	err := row.Scan(
		&r.ID,
		&r.RouteNumber,
		&r.RouteName,
		&r.StartPoint,
		&r.EndPoint,
		&stopsJSON,
		&r.TotalDistanceKm,
		&r.DurationMin,
		&r.BusType,
		&r.RouteType,
		&r.FarePerKm,
		&r.CreatedAt,
	)
	if err != nil {
		return r, err
	}
	if strings.TrimSpace(stopsJSON) != "" {
		_ = json.Unmarshal([]byte(stopsJSON), &r.Stops)
	}
	return r, nil
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, domain.ValidationError{Field: "route_id", Msg: "invalid id"}
	}
	row := r.DB.QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id=? LIMIT 1`, id)
	route, err := scanRoute(row)
	if err == sql.ErrNoRows {
		return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
	}
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	return route, nil
}

func (r RouteRepository) List() ([]models.Route, error) {
	rows, err := r.DB.Query(`SELECT ` + routeColumns + ` FROM routes ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, route)
	}
	return out, rows.Err()
}

func (r RouteRepository) Create(route models.Route) (int64, error) {
	stopsJSON, err := json.Marshal(route.Stops)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	res, err := r.DB.Exec(`
		INSERT INTO routes
			(route_number, route_name, start_point, end_point, stops,
			 total_distance_km, duration_min, bus_type, route_type, fare_per_km)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		route.RouteNumber,
		route.RouteName,
		route.StartPoint,
		route.EndPoint,
		string(stopsJSON),
		route.TotalDistanceKm,
		route.DurationMin,
		route.BusType,
		route.RouteType,
		route.FarePerKm,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

// UpdateFare revises pricing fields only; geography stays immutable once trips
// reference the route.
func (r RouteRepository) UpdateFare(id int64, farePerKm float64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "invalid id"}
	}
	res, err := r.DB.Exec(`UPDATE routes SET fare_per_km=? WHERE id=?`, farePerKm, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func (r RouteRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM routes WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

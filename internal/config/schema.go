package config

import "database/sql"

// schemaDDL bootstraps the tables the engine owns. The unique key on
// booking_seats (trip_id, service_date, seat_code) is the storage-level
// guarantee that no seat is ever double-held; the application lock only
// narrows the race window.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'passenger',
		status VARCHAR(50) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email),
		UNIQUE KEY uniq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		route_number VARCHAR(50) NOT NULL,
		route_name VARCHAR(255) NOT NULL,
		start_point VARCHAR(255) NOT NULL,
		end_point VARCHAR(255) NOT NULL,
		stops JSON NULL,
		total_distance_km DOUBLE NOT NULL DEFAULT 0,
		duration_min INT NOT NULL DEFAULT 0,
		bus_type VARCHAR(100) NOT NULL DEFAULT '',
		route_type VARCHAR(50) NOT NULL DEFAULT 'intercity',
		fare_per_km DOUBLE NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_routes_number (route_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS buses (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		bus_number VARCHAR(50) NOT NULL,
		depot_id BIGINT NOT NULL,
		bus_type VARCHAR(100) NOT NULL,
		capacity_total INT NOT NULL DEFAULT 0,
		layout_family VARCHAR(20) NOT NULL DEFAULT 'seater',
		layout_rows INT NOT NULL DEFAULT 0,
		layout_seats_per_row INT NOT NULL DEFAULT 0,
		insurance_expiry DATE NULL,
		fitness_expiry DATE NULL,
		maintenance_due TINYINT(1) NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'idle',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_buses_number (bus_number),
		KEY idx_buses_depot_type (depot_id, bus_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		license_number VARCHAR(100) NOT NULL DEFAULT '',
		depot_id BIGINT NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_drivers_depot (depot_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS conductors (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		employee_id VARCHAR(100) NOT NULL DEFAULT '',
		depot_id BIGINT NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_conductors_depot (depot_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS fare_policies (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		bus_type VARCHAR(100) NOT NULL,
		route_type VARCHAR(50) NOT NULL,
		minimum_fare DOUBLE NOT NULL DEFAULT 0,
		maximum_fare DOUBLE NOT NULL DEFAULT 0,
		rate_per_km DOUBLE NOT NULL DEFAULT 0,
		brackets JSON NULL,
		time_multipliers JSON NULL,
		season_multipliers JSON NULL,
		discounts JSON NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		effective_from DATETIME NOT NULL,
		effective_to DATETIME NULL,
		KEY idx_policies_pair (bus_type, route_type, active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		route_id BIGINT NOT NULL,
		bus_id BIGINT NOT NULL,
		driver_id BIGINT NOT NULL,
		conductor_id BIGINT NOT NULL,
		depot_id BIGINT NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		capacity INT NOT NULL DEFAULT 0,
		fare DOUBLE NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_trips_bus_date (bus_id, service_date),
		KEY idx_trips_driver_date (driver_id, service_date),
		KEY idx_trips_conductor_date (conductor_id, service_date),
		KEY idx_trips_depot_date (depot_id, service_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		passenger_name VARCHAR(255) NOT NULL,
		passenger_phone VARCHAR(100) NOT NULL DEFAULT '',
		passenger_email VARCHAR(255) NOT NULL DEFAULT '',
		passenger_type VARCHAR(20) NOT NULL DEFAULT 'adult',
		base_fare DOUBLE NOT NULL DEFAULT 0,
		tax DOUBLE NOT NULL DEFAULT 0,
		discount DOUBLE NOT NULL DEFAULT 0,
		total DOUBLE NOT NULL DEFAULT 0,
		paid DOUBLE NOT NULL DEFAULT 0,
		refunded DOUBLE NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_ref VARCHAR(255) NOT NULL DEFAULT '',
		cancel_reason VARCHAR(255) NOT NULL DEFAULT '',
		cancel_charge DOUBLE NOT NULL DEFAULT 0,
		cancelled_at DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_trip_date (trip_id, service_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS booking_seats (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		trip_id BIGINT NOT NULL,
		service_date VARCHAR(10) NOT NULL,
		seat_code VARCHAR(20) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_trip_seat (trip_id, service_date, seat_code),
		KEY idx_seats_booking (booking_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// Migrate creates missing tables. Safe to run on every boot.
func Migrate(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

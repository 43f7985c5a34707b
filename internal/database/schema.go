package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the application tables if they do not exist. It is
// safe to run repeatedly; cmd/dbtool invokes it before seeding.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email         VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			full_name     VARCHAR(255) NOT NULL,
			user_type     ENUM('user','worker','admin') NOT NULL DEFAULT 'user',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id    BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL UNIQUE,
			expires_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users(id),
			INDEX idx_sessions_user (user_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS shipping_routes (
			start_city                  VARCHAR(128) NOT NULL,
			end_city                    VARCHAR(128) NOT NULL,
			price_per_kg_composition    DECIMAL(10,2) NOT NULL,
			price_per_kg_door           DECIMAL(10,2) NOT NULL,
			estimated_delivery_days_min INT NOT NULL,
			estimated_delivery_days_max INT NOT NULL,
			PRIMARY KEY (start_city, end_city)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS base_costs (
			base_cost_composition DECIMAL(10,2) NOT NULL,
			base_cost_door        DECIMAL(10,2) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// seedRoute is one lane of the demo rate table.
type seedRoute struct {
	start, end       string
	perKgComposition float64
	perKgDoor        float64
	daysMin, daysMax int
}

// Seed fills the rate tables with the Kazakhstan lanes used by the demo
// environment and ensures exactly one base-cost row exists. Existing lanes
// are updated in place so the tool can be re-run after rate changes.
func Seed(db *sql.DB) error {
	routes := []seedRoute{
		{"Астана", "Алматы", 100, 150, 2, 4},
		{"Алматы", "Астана", 100, 150, 2, 4},
		{"Астана", "Шымкент", 120, 170, 3, 5},
		{"Шымкент", "Астана", 120, 170, 3, 5},
		{"Алматы", "Шымкент", 90, 140, 1, 3},
		{"Шымкент", "Алматы", 90, 140, 1, 3},
		{"Астана", "Караганда", 60, 100, 1, 2},
		{"Караганда", "Астана", 60, 100, 1, 2},
		{"Алматы", "Актобе", 150, 200, 4, 7},
		{"Актобе", "Алматы", 150, 200, 4, 7},
		{"Астана", "Павлодар", 70, 110, 1, 3},
		{"Павлодар", "Астана", 70, 110, 1, 3},
	}

	for _, rt := range routes {
		if _, err := db.Exec(`
			INSERT INTO shipping_routes
				(start_city, end_city, price_per_kg_composition, price_per_kg_door,
				 estimated_delivery_days_min, estimated_delivery_days_max)
			VALUES (?,?,?,?,?,?)
			ON DUPLICATE KEY UPDATE
				price_per_kg_composition=VALUES(price_per_kg_composition),
				price_per_kg_door=VALUES(price_per_kg_door),
				estimated_delivery_days_min=VALUES(estimated_delivery_days_min),
				estimated_delivery_days_max=VALUES(estimated_delivery_days_max)`,
			rt.start, rt.end, rt.perKgComposition, rt.perKgDoor, rt.daysMin, rt.daysMax); err != nil {
			return fmt.Errorf("seed route %s->%s: %w", rt.start, rt.end, err)
		}
	}

	// Single global base-cost record: insert only when the table is empty.
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM base_costs").Scan(&n); err != nil {
		return fmt.Errorf("seed base costs: %w", err)
	}
	if n == 0 {
		if _, err := db.Exec(
			"INSERT INTO base_costs (base_cost_composition, base_cost_door) VALUES (?,?)",
			1000.0, 1500.0); err != nil {
			return fmt.Errorf("seed base costs: %w", err)
		}
	}
	return nil
}

// Package devserver is a self-contained stand-in for the hosted LocoTranz
// backend: the same JSON surface the client consumes, backed by MySQL, for
// local development and integration testing.
package devserver

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Connect opens and pings the MySQL database.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables when they are missing. Dev convenience,
// not a migration system.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS buses (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_number VARCHAR(50) NOT NULL,
			plate_number VARCHAR(50) NOT NULL DEFAULT '',
			bus_type VARCHAR(100) NOT NULL DEFAULT '',
			total_seats INT NOT NULL,
			operator_name VARCHAR(255) NOT NULL DEFAULT ''
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS seats (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_id BIGINT NOT NULL,
			seat_label VARCHAR(10) NOT NULL,
			UNIQUE KEY uniq_bus_seat (bus_id, seat_label),
			KEY idx_bus (bus_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_id BIGINT NOT NULL,
			source VARCHAR(100) NOT NULL,
			destination VARCHAR(100) NOT NULL,
			departure_time DATETIME NOT NULL,
			arrival_time DATETIME NOT NULL,
			price DOUBLE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT '',
			KEY idx_route (source, destination)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			schedule_id BIGINT NOT NULL,
			seat_id BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
			booking_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_schedule (schedule_id),
			KEY idx_user (user_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, ddl := range stmts {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

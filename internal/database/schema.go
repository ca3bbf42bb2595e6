package database

import (
	"context"
	"database/sql"
)

// schema contains the table definitions the repositories rely on.
// Table and column names follow the persisted contract of the hotel
// data set (habitacions, clients, reserves) plus the staff table used
// by API authentication.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS habitacions (
		numero_habitacio INT PRIMARY KEY,
		tipus VARCHAR(50) NOT NULL,
		preu_per_nit DOUBLE NOT NULL,
		disponible BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id_client INT AUTO_INCREMENT PRIMARY KEY,
		nom VARCHAR(100) NOT NULL,
		cognoms VARCHAR(150) NOT NULL,
		data_naixement DATE NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		telefon VARCHAR(30) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reserves (
		id_reserva INT AUTO_INCREMENT PRIMARY KEY,
		numero_habitacio INT NOT NULL,
		id_client INT NOT NULL,
		data_entrada DATE NOT NULL,
		data_sortida DATE NOT NULL,
		total_a_pagar DOUBLE NOT NULL,
		FOREIGN KEY (numero_habitacio) REFERENCES habitacions(numero_habitacio),
		FOREIGN KEY (id_client) REFERENCES clients(id_client),
		INDEX idx_reserves_room_dates (numero_habitacio, data_entrada, data_sortida),
		INDEX idx_reserves_client (id_client)
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates the tables if they do not exist yet.  It is
// idempotent and runs once at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

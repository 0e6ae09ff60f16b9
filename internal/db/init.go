// Package db opens the PostgreSQL database of the firmware API and keeps
// an eye on it while the server runs.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    mail TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    update_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS device_type (
    id SERIAL PRIMARY KEY,
    hard_version TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    category INTEGER NOT NULL DEFAULT 1,
    has_ble BOOLEAN NOT NULL DEFAULT FALSE,
    has_finger BOOLEAN NOT NULL DEFAULT FALSE,
    has_stm32 BOOLEAN NOT NULL DEFAULT FALSE,
    "desc" TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS version_type (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS firm (
    id SERIAL PRIMARY KEY,
    hard_version INTEGER NOT NULL,
    version_name TEXT NOT NULL,
    version_format TEXT NOT NULL DEFAULT '',
    version_type INTEGER NOT NULL,
    finger_level INTEGER NOT NULL DEFAULT 0,
    url TEXT NOT NULL,
    "desc" TEXT NOT NULL DEFAULT '',
    update_time TIMESTAMPTZ NOT NULL,
    rely_version_type INTEGER,
    min TEXT,
    max TEXT,
    des_en TEXT NOT NULL DEFAULT '',
    des_ko TEXT NOT NULL DEFAULT '',
    des_sp TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS firm_hard_version_update_time_idx ON firm (hard_version, update_time DESC);
`

// InitPostgres opens dsn, checks the connection and creates missing tables.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables and indexes that do not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

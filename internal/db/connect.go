package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the catalog schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:guidance.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/guidance?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// a second pool connection to ":memory:" would see an empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS quiz_questions (
  category TEXT NOT NULL,
  category_pos INTEGER NOT NULL,
  question_pos INTEGER NOT NULL,
  text TEXT NOT NULL,
  PRIMARY KEY (category, question_pos)
);

CREATE TABLE IF NOT EXISTS interests (
  stream TEXT NOT NULL,
  stream_pos INTEGER NOT NULL,
  position INTEGER NOT NULL,
  key TEXT NOT NULL,
  prompt TEXT NOT NULL DEFAULT '',
  subject TEXT NOT NULL,
  career TEXT NOT NULL,
  PRIMARY KEY (stream, key)
);

CREATE TABLE IF NOT EXISTS colleges (
  id INTEGER PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  stream TEXT NOT NULL,
  subjects_json TEXT NOT NULL,
  distance_km REAL NOT NULL,
  rating REAL NOT NULL,
  tuition_fees INTEGER NOT NULL,
  facilities_json TEXT NOT NULL,
  accreditation TEXT NOT NULL DEFAULT '',
  faculty_count INTEGER NOT NULL DEFAULT 0,
  average_package REAL NOT NULL DEFAULT 0,
  placement_opportunities TEXT NOT NULL DEFAULT '',
  hostel INTEGER NOT NULL DEFAULT 0,
  transport_available INTEGER NOT NULL DEFAULT 0,
  scholarship INTEGER NOT NULL DEFAULT 0,
  scholarship_eligibility TEXT NOT NULL DEFAULT ''
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS quiz_questions (
  category TEXT NOT NULL,
  category_pos INTEGER NOT NULL,
  question_pos INTEGER NOT NULL,
  text TEXT NOT NULL,
  PRIMARY KEY (category, question_pos)
);

CREATE TABLE IF NOT EXISTS interests (
  stream TEXT NOT NULL,
  stream_pos INTEGER NOT NULL,
  position INTEGER NOT NULL,
  key TEXT NOT NULL,
  prompt TEXT NOT NULL DEFAULT '',
  subject TEXT NOT NULL,
  career TEXT NOT NULL,
  PRIMARY KEY (stream, key)
);

CREATE TABLE IF NOT EXISTS colleges (
  id INTEGER PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  stream TEXT NOT NULL,
  subjects_json TEXT NOT NULL,
  distance_km DOUBLE PRECISION NOT NULL,
  rating DOUBLE PRECISION NOT NULL,
  tuition_fees INTEGER NOT NULL,
  facilities_json TEXT NOT NULL,
  accreditation TEXT NOT NULL DEFAULT '',
  faculty_count INTEGER NOT NULL DEFAULT 0,
  average_package DOUBLE PRECISION NOT NULL DEFAULT 0,
  placement_opportunities TEXT NOT NULL DEFAULT '',
  hostel BOOLEAN NOT NULL DEFAULT FALSE,
  transport_available BOOLEAN NOT NULL DEFAULT FALSE,
  scholarship BOOLEAN NOT NULL DEFAULT FALSE,
  scholarship_eligibility TEXT NOT NULL DEFAULT ''
);
`

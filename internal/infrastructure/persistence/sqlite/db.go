package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// the quotes table exists. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			id TEXT PRIMARY KEY,
			policy_name TEXT NOT NULL,
			category_code TEXT NOT NULL,
			pickup_at TEXT NOT NULL,
			return_at TEXT NOT NULL,
			destinations TEXT NOT NULL DEFAULT '',
			insurance_type TEXT NOT NULL,
			kilometer_package TEXT NOT NULL,
			estimated_km INTEGER NOT NULL DEFAULT 0,
			payment_terms_days INTEGER NOT NULL DEFAULT 0,
			bookable INTEGER NOT NULL,
			total_net TEXT NOT NULL,
			currency TEXT NOT NULL,
			result TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_expires_at ON quotes(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_fingerprint ON quotes(fingerprint)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// Package database provides SQLite connection management and schema bootstrap.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

// Config holds database configuration settings.
type Config struct {
	// Path is the filesystem location of the SQLite database file.
	Path string
}

// Connect opens the SQLite database at the configured path.
//
// SQLite serializes concurrent writers at the file level, so no additional
// locking is needed; a busy timeout keeps competing processes waiting instead
// of failing immediately.
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to open database: %v", err))
	}

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to set busy timeout: %v", err))
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to ping database: %v", err))
	}

	return db, nil
}

// Migrate creates the backing schema if it is absent. Safe to call on every
// startup: existing tables and records are left untouched.
//
// AUTOINCREMENT guarantees strictly increasing ids that are never reused,
// even after deletions.
func Migrate(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT,
		encrypted_payload TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := db.Exec(query); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageInit, fmt.Sprintf("failed to create schema: %v", err))
	}

	return nil
}

// Package database provides SQLite persistence for identity and refresh
// token storage. Connections are pooled through database/sql; the refresh
// token consume path runs inside a transaction to keep its expiry check
// atomic.
package database

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and bootstraps the
// schema. Failures propagate to the caller; the entry point decides whether
// they are fatal.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("couldn't enable foreign keys: %v", err)
	}

	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("couldn't init database schema: %v", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) IdentityStore() service.IdentityStore {
	return s
}

func (s *SQLiteStore) RefreshStore() service.RefreshStore {
	return s
}

func initSchema(db *sql.DB) error {
	if err := initTable(db, "identity", `
		CREATE TABLE IF NOT EXISTS identity (
			id          TEXT PRIMARY KEY,
			username    TEXT UNIQUE NOT NULL,
			secret      BLOB NOT NULL,
			created_at  INTEGER NOT NULL
		);`,
	); err != nil {
		return err
	}

	if err := initTable(db, "refresh", `
		CREATE TABLE IF NOT EXISTS refresh (
			id          INTEGER PRIMARY KEY,
			owner       TEXT NOT NULL,
			token       TEXT UNIQUE NOT NULL,
			expiration  INTEGER NOT NULL,
			created_at  INTEGER NOT NULL,
			FOREIGN KEY (owner) REFERENCES identity (id)
		);`,
	); err != nil {
		return err
	}

	return nil
}

func initTable(
	db *sql.DB,
	name string,
	sql string,
) error {
	if _, err := db.Exec(sql); err != nil {
		return fmt.Errorf("failed to init '%s' table schema: %v", name, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func resultsEmpty(result sql.Result) bool {
	count, err := result.RowsAffected()
	if err != nil {
		return false
	}
	return count == 0
}

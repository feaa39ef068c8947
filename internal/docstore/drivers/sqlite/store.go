// Package sqlite implements the document store contract on an embedded
// SQLite database. Documents live in a single table keyed by (container, id)
// with the partition key alongside for routed point operations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nibbleworks/userbase/internal/docstore"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens (or creates) the SQLite database at dsn.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single writer avoids SQLITE_BUSY churn under concurrent callers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Container returns a handle scoped to one named document collection.
func (s *Store) Container(name string) docstore.Container {
	return &container{db: s.db, name: name}
}

// mapNotFound normalizes the driver's empty-result signal.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.ErrNotFound
	}
	return err
}

// mapConflict normalizes unique/primary-key violations.
func mapConflict(err error) error {
	var serr *sqlitedriver.Error
	if errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return docstore.ErrConflict
	}
	return err
}

// Package postgres implements the document store contract on PostgreSQL.
// Documents are JSONB rows keyed by (container, id) with the partition key
// alongside for routed point operations.
package postgres

import (
	"context"
	"errors"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database described by dsn and verifies the
// connection.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Container returns a handle scoped to one named document collection.
func (s *Store) Container(name string) docstore.Container {
	return &container{pool: s.pool, name: name}
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.ErrNotFound
	}
	return err
}

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return docstore.ErrConflict
	}
	return err
}

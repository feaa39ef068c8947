package postgres

import (
	"context"
	"encoding/json"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type container struct {
	pool *pgxpool.Pool
	name string
}

func (c *container) Create(ctx context.Context, id, partitionKey string, body json.RawMessage) error {
	_, err := c.pool.Exec(ctx, `
		INSERT INTO documents (container, id, partition_key, body)
		VALUES (@container, @id, @pk, @body)`,
		pgx.NamedArgs{
			"container": c.name,
			"id":        id,
			"pk":        partitionKey,
			"body":      string(body),
		},
	)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (c *container) Upsert(ctx context.Context, id, partitionKey string, body json.RawMessage) error {
	_, err := c.pool.Exec(ctx, `
		INSERT INTO documents (container, id, partition_key, body)
		VALUES (@container, @id, @pk, @body)
		ON CONFLICT (container, id) DO UPDATE SET
			partition_key = excluded.partition_key,
			body          = excluded.body,
			updated_at    = now()`,
		pgx.NamedArgs{
			"container": c.name,
			"id":        id,
			"pk":        partitionKey,
			"body":      string(body),
		},
	)
	return err
}

func (c *container) Read(ctx context.Context, id, partitionKey string) (json.RawMessage, error) {
	var body string
	err := c.pool.QueryRow(ctx, `
		SELECT body::text FROM documents
		WHERE container = @container AND id = @id AND partition_key = @pk`,
		pgx.NamedArgs{"container": c.name, "id": id, "pk": partitionKey},
	).Scan(&body)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return json.RawMessage(body), nil
}

func (c *container) Delete(ctx context.Context, id, partitionKey string) error {
	ct, err := c.pool.Exec(ctx, `
		DELETE FROM documents
		WHERE container = @container AND id = @id AND partition_key = @pk`,
		pgx.NamedArgs{"container": c.name, "id": id, "pk": partitionKey},
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (c *container) Query(ctx context.Context, q docstore.Query) ([]json.RawMessage, error) {
	args := pgx.NamedArgs{"container": c.name}
	for name, value := range q.Params {
		args[name] = value
	}
	return c.drain(ctx, q.Text, args)
}

func (c *container) Select(ctx context.Context, spec docstore.Specification) ([]json.RawMessage, error) {
	text, args := compileSelect(c.name, spec)
	return c.drain(ctx, text, args)
}

func (c *container) Count(ctx context.Context, spec docstore.Specification) (int, error) {
	text, args := compileCount(c.name, spec)
	var n int
	if err := c.pool.QueryRow(ctx, text, args).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *container) drain(ctx context.Context, text string, args pgx.NamedArgs) ([]json.RawMessage, error) {
	rows, err := c.pool.Query(ctx, text, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		results = append(results, json.RawMessage(body))
	}
	return results, rows.Err()
}

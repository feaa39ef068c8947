package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/nibbleworks/userbase/internal/docstore"
)

type container struct {
	db   *sql.DB
	name string
}

func (c *container) Create(ctx context.Context, id, partitionKey string, body json.RawMessage) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (container, id, partition_key, body)
		VALUES (:container, :id, :pk, :body)`,
		sql.Named("container", c.name),
		sql.Named("id", id),
		sql.Named("pk", partitionKey),
		sql.Named("body", string(body)),
	)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (c *container) Upsert(ctx context.Context, id, partitionKey string, body json.RawMessage) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (container, id, partition_key, body)
		VALUES (:container, :id, :pk, :body)
		ON CONFLICT (container, id) DO UPDATE SET
			partition_key = excluded.partition_key,
			body          = excluded.body,
			updated_at    = CURRENT_TIMESTAMP`,
		sql.Named("container", c.name),
		sql.Named("id", id),
		sql.Named("pk", partitionKey),
		sql.Named("body", string(body)),
	)
	return err
}

func (c *container) Read(ctx context.Context, id, partitionKey string) (json.RawMessage, error) {
	var body string
	err := c.db.QueryRowContext(ctx, `
		SELECT body FROM documents
		WHERE container = :container AND id = :id AND partition_key = :pk`,
		sql.Named("container", c.name),
		sql.Named("id", id),
		sql.Named("pk", partitionKey),
	).Scan(&body)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return json.RawMessage(body), nil
}

func (c *container) Delete(ctx context.Context, id, partitionKey string) error {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE container = :container AND id = :id AND partition_key = :pk`,
		sql.Named("container", c.name),
		sql.Named("id", id),
		sql.Named("pk", partitionKey),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

// Query executes a raw parameterized query. Parameters bind by name through
// database/sql; the query text is store-native SQL over the documents table.
func (c *container) Query(ctx context.Context, q docstore.Query) ([]json.RawMessage, error) {
	args := make([]any, 0, len(q.Params)+1)
	if strings.Contains(q.Text, ":container") {
		args = append(args, sql.Named("container", c.name))
	}
	for name, value := range q.Params {
		args = append(args, sql.Named(name, value))
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
	if err := c.db.QueryRowContext(ctx, text, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *container) drain(ctx context.Context, text string, args []any) ([]json.RawMessage, error) {
	rows, err := c.db.QueryContext(ctx, text, args...)
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

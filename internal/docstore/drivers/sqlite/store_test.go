package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.ApplyMigrations())

	return store
}

func doc(fields map[string]any) json.RawMessage {
	body, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	return body
}

func TestContainerPointOperations(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	c := store.Container("users")
	ctx := context.Background()

	body := doc(map[string]any{"id": "alice:1", "userName": "alice@example.com"})

	t.Run("create then read", func(t *testing.T) {
		require.NoError(t, c.Create(ctx, "alice:1", "alice", body))

		got, err := c.Read(ctx, "alice:1", "alice")
		require.NoError(t, err)
		require.JSONEq(t, string(body), string(got))
	})

	t.Run("create duplicate conflicts", func(t *testing.T) {
		require.ErrorIs(t, c.Create(ctx, "alice:1", "alice", body), docstore.ErrConflict)
	})

	t.Run("read is routed by partition key", func(t *testing.T) {
		_, err := c.Read(ctx, "alice:1", "wrong-partition")
		require.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("read absent", func(t *testing.T) {
		_, err := c.Read(ctx, "nobody:1", "nobody")
		require.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		updated := doc(map[string]any{"id": "alice:1", "userName": "alice@example.org"})
		require.NoError(t, c.Upsert(ctx, "alice:1", "alice", updated))

		got, err := c.Read(ctx, "alice:1", "alice")
		require.NoError(t, err)
		require.JSONEq(t, string(updated), string(got))
	})

	t.Run("delete then delete again", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "alice:1", "alice"))
		require.ErrorIs(t, c.Delete(ctx, "alice:1", "alice"), docstore.ErrNotFound)
	})
}

func TestContainersAreIsolated(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	usersC := store.Container("users")
	other := store.Container("audit")

	require.NoError(t, usersC.Create(ctx, "alice:1", "alice", doc(map[string]any{"id": "alice:1"})))

	_, err := other.Read(ctx, "alice:1", "alice")
	require.ErrorIs(t, err, docstore.ErrNotFound)

	n, err := other.Count(ctx, docstore.NewSpecification())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestContainerRawQuery(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	c := store.Container("users")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("user%d:1", i)
		require.NoError(t, c.Create(ctx, id, fmt.Sprintf("user%d", i), doc(map[string]any{
			"id":    id,
			"score": i,
		})))
	}

	rows, err := c.Query(ctx, docstore.Query{
		Text: `SELECT body FROM documents
			WHERE container = :container AND json_extract(body, '$.score') >= :min
			ORDER BY json_extract(body, '$.score')`,
		Params: map[string]any{"min": 1},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	t.Run("malformed query surfaces the store error", func(t *testing.T) {
		_, err := c.Query(ctx, docstore.Query{Text: "SELECT FROM WHERE"})
		require.Error(t, err)
	})
}

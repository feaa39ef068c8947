package postgres

import (
	"testing"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestCompileSelect(t *testing.T) {
	t.Parallel()

	t.Run("filter then sort then page", func(t *testing.T) {
		spec := docstore.NewSpecification().
			WithFilter("userName", "alice", true).
			WithSort("firstName", docstore.Descending).
			WithPaging(10, 5)

		text, args := compileSelect("users", spec)
		require.Equal(t,
			"SELECT body::text FROM documents WHERE container = @container"+
				" AND lower((body ->> 'userName')) = lower(@filter)"+
				" ORDER BY (body ->> 'firstName') DESC, id ASC"+
				" LIMIT @pagesize OFFSET @pagestart",
			text)
		require.Equal(t, pgx.NamedArgs{
			"container": "users",
			"filter":    "alice",
			"pagesize":  5,
			"pagestart": 10,
		}, args)
	})

	t.Run("contains uses strpos", func(t *testing.T) {
		spec := docstore.NewSpecification().
			WithFilter("userName", "alice", false).
			WithPaging(0, docstore.NoLimit)

		text, _ := compileSelect("users", spec)
		require.Equal(t,
			"SELECT body::text FROM documents WHERE container = @container"+
				" AND strpos(lower((body ->> 'userName')), lower(@filter)) > 0",
			text)
	})

	t.Run("paged but unsorted orders by id", func(t *testing.T) {
		spec := docstore.NewSpecification().WithPaging(0, 2)

		text, _ := compileSelect("users", spec)
		require.Equal(t,
			"SELECT body::text FROM documents WHERE container = @container"+
				" ORDER BY id ASC LIMIT @pagesize OFFSET @pagestart",
			text)
	})

	t.Run("no limit drops ordering and paging", func(t *testing.T) {
		spec := docstore.NewSpecification().WithPaging(3, docstore.NoLimit)

		text, args := compileSelect("users", spec)
		require.Equal(t, "SELECT body::text FROM documents WHERE container = @container", text)
		require.Equal(t, pgx.NamedArgs{"container": "users"}, args)
	})

	t.Run("rejects field names that are not identifiers", func(t *testing.T) {
		spec := docstore.NewSpecification().WithFilter("userName') --", "x", true)
		require.Panics(t, func() { compileSelect("users", spec) })
	})
}

func TestCompileCount(t *testing.T) {
	t.Parallel()

	// The count wraps the full plan, paging included, so a capped page never
	// reports more rows than Select would return.
	spec := docstore.NewSpecification().
		WithFilter("userName", "example.com", false).
		WithPaging(0, 2)

	text, args := compileCount("users", spec)
	require.Equal(t,
		"SELECT COUNT(*) FROM ("+
			"SELECT 1 FROM documents WHERE container = @container"+
			" AND strpos(lower((body ->> 'userName')), lower(@filter)) > 0"+
			" ORDER BY id ASC LIMIT @pagesize OFFSET @pagestart"+
			") AS q",
		text)
	require.Equal(t, pgx.NamedArgs{
		"container": "users",
		"filter":    "example.com",
		"pagesize":  2,
		"pagestart": 0,
	}, args)
}

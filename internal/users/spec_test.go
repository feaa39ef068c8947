package users

import (
	"testing"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/stretchr/testify/require"
)

func TestSearchSpecificationFilter(t *testing.T) {
	t.Parallel()

	t.Run("blank username means no predicate", func(t *testing.T) {
		spec := SearchSpecification("  ", 0, 50, "", docstore.Ascending, false)
		require.False(t, spec.HasFilter())
	})

	t.Run("targets the stored username field", func(t *testing.T) {
		spec := SearchSpecification("alice", 0, 50, "", docstore.Ascending, true)
		field, text, exact := spec.Filter()
		require.Equal(t, "userName", field)
		require.Equal(t, "alice", text)
		require.True(t, exact)
	})
}

func TestSearchSpecificationSortColumns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		column string
		field  string
	}{
		{"firstname", "firstName"},
		{"FirstName", "firstName"},
		{"lastname", "lastName"},
		{"USERNAME", "userName"},
	}
	for _, tc := range cases {
		t.Run(tc.column, func(t *testing.T) {
			spec := SearchSpecification("", 0, 50, tc.column, docstore.Descending, false)
			require.True(t, spec.Sorted())
			field, dir := spec.Sort()
			require.Equal(t, tc.field, field)
			require.Equal(t, docstore.Descending, dir)
		})
	}
}

// Unrecognized sort columns deliberately leave ordering unspecified instead of
// erroring; "title" is the historical default and takes this path.
func TestSearchSpecificationUnknownSortColumnIsNoOp(t *testing.T) {
	t.Parallel()

	for _, column := range []string{"", "title", "created", "password"} {
		spec := SearchSpecification("", 0, 50, column, docstore.Ascending, false)
		require.False(t, spec.Sorted(), "column %q should not sort", column)
	}
}

func TestSearchSpecificationPaging(t *testing.T) {
	t.Parallel()

	spec := SearchSpecification("", 10, 25, "", docstore.Ascending, false)
	start, size := spec.Page()
	require.Equal(t, 10, start)
	require.Equal(t, 25, size)

	unpaged := SearchSpecification("", 10, docstore.NoLimit, "", docstore.Ascending, false)
	require.False(t, unpaged.Paged())
}

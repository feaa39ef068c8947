package docstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpecificationDefaults(t *testing.T) {
	t.Parallel()

	spec := NewSpecification()
	require.False(t, spec.HasFilter())
	require.False(t, spec.Sorted())
	require.True(t, spec.Paged())

	start, size := spec.Page()
	require.Equal(t, 0, start)
	require.Equal(t, DefaultPageSize, size)
}

func TestSpecificationIsImmutable(t *testing.T) {
	t.Parallel()

	base := NewSpecification()
	derived := base.
		WithFilter("userName", "alice", true).
		WithPaging(10, 20).
		WithSort("firstName", Descending)

	require.False(t, base.HasFilter())
	require.False(t, base.Sorted())
	_, size := base.Page()
	require.Equal(t, DefaultPageSize, size)

	field, text, exact := derived.Filter()
	require.Equal(t, "userName", field)
	require.Equal(t, "alice", text)
	require.True(t, exact)

	start, size := derived.Page()
	require.Equal(t, 10, start)
	require.Equal(t, 20, size)

	sortField, dir := derived.Sort()
	require.Equal(t, "firstName", sortField)
	require.Equal(t, Descending, dir)
}

func TestSpecificationNoLimitDisablesPaging(t *testing.T) {
	t.Parallel()

	spec := NewSpecification().WithPaging(25, NoLimit)
	require.False(t, spec.Paged())
}

func TestSpecificationBlankFilterIsNoFilter(t *testing.T) {
	t.Parallel()

	require.False(t, NewSpecification().WithFilter("userName", "", false).HasFilter())
}

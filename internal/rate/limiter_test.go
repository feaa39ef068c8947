package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyLimiter(t *testing.T) {
	t.Parallel()

	t.Run("denies once the burst is spent", func(t *testing.T) {
		l := NewKeyLimiter(3, time.Hour)
		for n := 0; n < 3; n++ {
			require.True(t, l.Allow("alice"))
		}
		require.False(t, l.Allow("alice"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := NewKeyLimiter(1, time.Hour)
		require.True(t, l.Allow("alice"))
		require.False(t, l.Allow("alice"))
		require.True(t, l.Allow("bob"))
	})

	t.Run("refills over time", func(t *testing.T) {
		l := NewKeyLimiter(1000, time.Second)
		for n := 0; n < 1000; n++ {
			require.True(t, l.Allow("alice"))
		}
		require.False(t, l.Allow("alice"))

		time.Sleep(5 * time.Millisecond)
		require.True(t, l.Allow("alice"))
	})
}

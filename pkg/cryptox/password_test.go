package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("produces PHC format", func(t *testing.T) {
		hash, err := HashPassword("hunter2")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	})

	t.Run("salts are random", func(t *testing.T) {
		first, err := HashPassword("hunter2")
		require.NoError(t, err)
		second, err := HashPassword("hunter2")
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("not it", hash), ErrMismatch)
	})

	t.Run("rejects malformed hashes", func(t *testing.T) {
		require.Error(t, VerifyPassword("anything", "not-a-phc-string"))
		require.Error(t, VerifyPassword("anything", "$bcrypt$v=19$m=1,t=1,p=1$AAAA$BBBB"))
	})
}

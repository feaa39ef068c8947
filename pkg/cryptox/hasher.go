package cryptox

// Hasher adapts the package functions to capability interfaces that take the
// hash implementation by composition.
type Hasher struct{}

func (Hasher) Hash(password string) (string, error) { return HashPassword(password) }

func (Hasher) Verify(password, hash string) error { return VerifyPassword(password, hash) }

package tokens

import (
	"time"

	"github.com/nibbleworks/userbase/internal/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the assertions embedded in issued access tokens. The registered
// subject carries the user id; uid duplicates it for callers that only read
// custom claims.
type Claims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

// newClaims builds minimally-correct claims for a user, expiring ttl after
// now.
func newClaims(user *users.AppUser, issuer, audience string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID:   user.ID,
		FullName: user.FullName(),
		Username: user.UserName,
	}
}

// Package tokens verifies credentials against the user repository and issues
// signed, time-bounded access tokens.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nibbleworks/userbase/internal/docstore"
	"github.com/nibbleworks/userbase/internal/rate"
	"github.com/nibbleworks/userbase/internal/users"
	"github.com/nibbleworks/userbase/pkg/slogx"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("tokens: invalid_credentials")

	ErrTooManyAttempts = errors.New("tokens: too_many_attempts")
)

// Response is the caller-facing authentication result: a public-safe summary
// of the subject plus the opaque signed token.
type Response struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	Token        string `json:"token"`
}

// Service authenticates users and signs HS256 tokens over a shared secret.
type Service struct {
	Repo    *users.Repository
	Hasher  users.PasswordHasher
	Limiter *rate.KeyLimiter // optional per-username throttle

	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Authenticate looks the user up by exact username match, verifies the
// password hash and issues a token. An unknown username and a wrong password
// fail identically; a store failure propagates distinctly so callers can
// tell infrastructure trouble from bad credentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Response, error) {
	if s.Limiter != nil && !s.Limiter.Allow(strings.ToLower(username)) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(password, user.Password); err != nil {
		slogx.FromContext(ctx).Debug("password verification failed",
			slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.sign(user, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("tokens: sign: %w", err)
	}

	return &Response{
		ID:           user.ID,
		FullName:     user.FullName(),
		EmailAddress: user.UserName,
		Token:        token,
	}, nil
}

// Parse validates a token issued by this service and returns its claims.
func (s *Service) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) lookup(ctx context.Context, username string) (*users.AppUser, error) {
	spec := users.SearchSpecification(username, 0, 1, "", docstore.Ascending, true)
	matches, err := s.Repo.GetItems(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("tokens: user lookup: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (s *Service) sign(user *users.AppUser, now time.Time) (string, error) {
	claims := newClaims(user, s.Issuer, s.Audience, s.TTL, now)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

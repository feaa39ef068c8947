package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/nibbleworks/userbase/internal/docstore"
	"github.com/nibbleworks/userbase/pkg/slogx"
)

var (
	ErrValidation    = errors.New("users: invalid registration")
	ErrUsernameTaken = errors.New("users: username already taken")
)

const maxNameLength = 100

// PasswordHasher is the password-hash capability. Hash internals are a
// collaborator concern; the service only ever stores and compares hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// EmailSender delivers mail. Delivery is a collaborator concern; registration
// only composes the welcome message.
type EmailSender interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}

// Service owns registration, profile reads and user search.
type Service struct {
	Repo   *Repository
	Hasher PasswordHasher
	Email  EmailSender
}

// RegisterParams is the caller-facing registration request.
type RegisterParams struct {
	FirstName         string
	LastName          string
	Username          string
	Password          string
	ConfirmedPassword string
}

// Register validates the request, enforces username uniqueness, hashes the
// password and persists the user, then sends the welcome mail. Validation is
// explicit validate-then-execute; there is no implicit pipeline around it.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*AppUser, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	taken, err := s.usernameTaken(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}

	user := &AppUser{
		UserName:  p.Username,
		Password:  hash,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if err := s.Repo.AddItem(ctx, user); err != nil {
		return nil, err
	}

	// The user document is already persisted; a failed welcome mail is not
	// worth failing the registration over.
	if err := s.sendWelcome(ctx, user); err != nil {
		slogx.FromContext(ctx).Warn("welcome mail failed",
			slog.String("username", user.UserName), slog.Any("err", err))
	}

	return user, nil
}

// GetByID is a point read. It returns (nil, nil) when no such user exists.
func (s *Service) GetByID(ctx context.Context, id string) (*AppUser, error) {
	return s.Repo.GetItem(ctx, id)
}

// SearchParams are the caller-facing search criteria.
type SearchParams struct {
	Username      string
	PageStart     int
	PageSize      int // docstore.NoLimit disables paging; 0 means the default
	SortColumn    string
	SortDirection docstore.SortDirection
	ExactSearch   bool
}

// Search lists users matching the criteria.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]*AppUser, error) {
	if p.PageSize == 0 {
		p.PageSize = docstore.DefaultPageSize
	}
	spec := SearchSpecification(p.Username, p.PageStart, p.PageSize, p.SortColumn, p.SortDirection, p.ExactSearch)
	return s.Repo.GetItems(ctx, spec)
}

func (s *Service) usernameTaken(ctx context.Context, username string) (bool, error) {
	spec := SearchSpecification(username, 0, 1, "", docstore.Ascending, true)
	count, err := s.Repo.GetItemsCount(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) sendWelcome(ctx context.Context, user *AppUser) error {
	subject := "Welcome!"
	body := fmt.Sprintf(
		"Dear %s,<br/>Your registration was successful. Thank you for using our services.<br/>Best regards,<br/>The team",
		user.FullName(),
	)
	return s.Email.Send(ctx, user.UserName, user.FullName(), subject, body)
}

func (p RegisterParams) validate() error {
	switch {
	case strings.TrimSpace(p.FirstName) == "":
		return fmt.Errorf("%w: first name is required", ErrValidation)
	case len(p.FirstName) > maxNameLength:
		return fmt.Errorf("%w: first name exceeds %d characters", ErrValidation, maxNameLength)
	case strings.TrimSpace(p.LastName) == "":
		return fmt.Errorf("%w: last name is required", ErrValidation)
	case len(p.LastName) > maxNameLength:
		return fmt.Errorf("%w: last name exceeds %d characters", ErrValidation, maxNameLength)
	case strings.TrimSpace(p.Username) == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case p.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case p.ConfirmedPassword != p.Password:
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if _, err := mail.ParseAddress(p.Username); err != nil {
		return fmt.Errorf("%w: username must be a valid email address", ErrValidation)
	}
	return nil
}

package users

import (
	"fmt"
	"strings"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/google/uuid"
)

const idDelimiter = ":"

// Strategy generates user ids of the form "<username>:<uuid>" and resolves
// the username prefix as the partition key. Every record of one user lands on
// the same partition, so profile and auth lookups are point reads instead of
// fan-out queries; the random suffix keeps ids unique.
type Strategy struct{}

func (Strategy) GenerateID(u *AppUser) string {
	return u.UserName + idDelimiter + uuid.NewString()
}

// PartitionKey extracts the prefix before the first delimiter. The same id
// always resolves to the same key.
func (Strategy) PartitionKey(id string) (string, error) {
	prefix, _, ok := strings.Cut(id, idDelimiter)
	if !ok {
		return "", fmt.Errorf("%w: %q has no %q delimiter", docstore.ErrMalformedID, id, idDelimiter)
	}
	return prefix, nil
}

// Repository is the document repository for AppUser.
type Repository = docstore.Repository[AppUser, *AppUser]

// NewRepository builds the AppUser repository over a container.
func NewRepository(container docstore.Container) *Repository {
	return docstore.NewRepository[AppUser, *AppUser](container, Strategy{})
}

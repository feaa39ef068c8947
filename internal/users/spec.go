package users

import (
	"strings"

	"github.com/nibbleworks/userbase/internal/docstore"
)

// Stored JSON property names the specification evaluator may address.
const (
	fieldUserName  = "userName"
	fieldFirstName = "firstName"
	fieldLastName  = "lastName"
)

// SearchSpecification describes a user search. A non-blank username becomes a
// case-insensitive equality (exactSearch) or contains predicate on the stored
// username. sortColumn is matched case-insensitively against firstname,
// lastname and username; anything else leaves the ordering unspecified, which
// callers rely on as a silent no-op. pageSize docstore.NoLimit disables
// paging.
func SearchSpecification(username string, pageStart, pageSize int, sortColumn string, dir docstore.SortDirection, exactSearch bool) docstore.Specification {
	spec := docstore.NewSpecification().WithPaging(pageStart, pageSize)

	if strings.TrimSpace(username) != "" {
		spec = spec.WithFilter(fieldUserName, username, exactSearch)
	}

	switch strings.ToLower(sortColumn) {
	case "firstname":
		spec = spec.WithSort(fieldFirstName, dir)
	case "lastname":
		spec = spec.WithSort(fieldLastName, dir)
	case "username":
		spec = spec.WithSort(fieldUserName, dir)
	}

	return spec
}

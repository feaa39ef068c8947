// Package docstore provides a generic repository over a partitioned document
// store. Concrete drivers (sqlite, postgres) implement the Store and Container
// contracts; entity packages supply a Strategy that owns id generation and
// partition-key routing.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrNotFound    = errors.New("docstore: not found")
	ErrConflict    = errors.New("docstore: already exists")
	ErrMalformedID = errors.New("docstore: malformed id")
)

// Entity is any record addressed by a store-assigned string id. The id is
// immutable once assigned and unique within its container.
type Entity interface {
	DocumentID() string
	SetDocumentID(id string)
}

// Query is a raw, parameterized store-native query. It is the escape hatch for
// queries the Specification model cannot express. Params are bound by name by
// the driver; callers must never concatenate untrusted input into Text.
type Query struct {
	Text   string
	Params map[string]any
}

// Container is a partitioned collection of JSON documents. Drivers map their
// native "no rows" and "duplicate key" signals to ErrNotFound and ErrConflict.
type Container interface {
	// Create writes a new document, failing with ErrConflict if id exists.
	Create(ctx context.Context, id, partitionKey string, body json.RawMessage) error

	// Upsert writes the document whether or not a prior one existed.
	Upsert(ctx context.Context, id, partitionKey string, body json.RawMessage) error

	// Read is a point read addressed by (id, partition key).
	Read(ctx context.Context, id, partitionKey string) (json.RawMessage, error)

	// Delete removes the document, failing with ErrNotFound if absent.
	Delete(ctx context.Context, id, partitionKey string) error

	// Query executes a raw parameterized query and drains the cursor.
	Query(ctx context.Context, q Query) ([]json.RawMessage, error)

	// Select compiles the specification to a store-native query and drains it.
	Select(ctx context.Context, spec Specification) ([]json.RawMessage, error)

	// Count compiles the specification and returns its cardinality instead of
	// materializing rows.
	Count(ctx context.Context, spec Specification) (int, error)
}

// Store is the root handle a driver exposes. Containers are cheap to obtain
// and safe for concurrent use; the Store owns the pooled connection.
type Store interface {
	Container(name string) Container
	ApplyMigrations() error
	Ping(ctx context.Context) error
	Close() error
}

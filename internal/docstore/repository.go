package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Strategy is the per-entity-type policy for generating an identifier and
// deriving its partition key. The same id must always resolve to the same key;
// that is what routes point reads and writes without a fan-out query.
type Strategy[P any] interface {
	// GenerateID produces a new unique id for the item, embedding the value
	// the partition key is later derived from.
	GenerateID(item P) string

	// PartitionKey derives the routing key from an id. It fails with
	// ErrMalformedID when the id does not carry the expected shape.
	PartitionKey(id string) (string, error)
}

// Repository is a generic CRUD and specification-query facade over one
// container. It composes a Container with a Strategy rather than being
// subclassed per entity type; per-type customization lives entirely in the
// Strategy and in per-entity specification constructors.
//
// A missing document is represented as a nil result, never as an error. That
// is the single normalized "absent" signal the rest of the system relies on.
type Repository[T any, P interface {
	*T
	Entity
}] struct {
	container Container
	strategy  Strategy[P]
}

// NewRepository builds a repository for one entity type.
func NewRepository[T any, P interface {
	*T
	Entity
}](container Container, strategy Strategy[P]) *Repository[T, P] {
	return &Repository[T, P]{container: container, strategy: strategy}
}

// AddItem assigns a fresh id via the strategy and writes the item as a
// create. ErrConflict is not expected in practice given the random id suffix.
func (r *Repository[T, P]) AddItem(ctx context.Context, item P) error {
	id := r.strategy.GenerateID(item)
	pk, err := r.strategy.PartitionKey(id)
	if err != nil {
		return err
	}
	item.SetDocumentID(id)

	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("docstore: marshal item: %w", err)
	}
	return r.container.Create(ctx, id, pk, body)
}

// UpdateItem upserts the item at the partition key resolved from id. It
// succeeds whether or not a prior document existed; concurrent writers to the
// same id race at the store's last-writer-wins semantics.
func (r *Repository[T, P]) UpdateItem(ctx context.Context, id string, item P) error {
	pk, err := r.strategy.PartitionKey(id)
	if err != nil {
		return err
	}
	item.SetDocumentID(id)

	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("docstore: marshal item: %w", err)
	}
	return r.container.Upsert(ctx, id, pk, body)
}

// DeleteItem removes the document at the resolved partition key. Deleting an
// absent document is a success, keeping the operation idempotent.
func (r *Repository[T, P]) DeleteItem(ctx context.Context, id string) error {
	pk, err := r.strategy.PartitionKey(id)
	if err != nil {
		return err
	}
	if err := r.container.Delete(ctx, id, pk); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// GetItem is a point read at the resolved partition key. It returns (nil, nil)
// when the document is absent.
func (r *Repository[T, P]) GetItem(ctx context.Context, id string) (P, error) {
	pk, err := r.strategy.PartitionKey(id)
	if err != nil {
		return nil, err
	}

	body, err := r.container.Read(ctx, id, pk)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	item := P(new(T))
	if err := json.Unmarshal(body, item); err != nil {
		return nil, fmt.Errorf("docstore: unmarshal item: %w", err)
	}
	return item, nil
}

// GetItems compiles the specification via the driver's evaluator, drains the
// result cursor fully and returns the materialized items, bounded by the
// specification's paging.
func (r *Repository[T, P]) GetItems(ctx context.Context, spec Specification) ([]P, error) {
	rows, err := r.container.Select(ctx, spec)
	if err != nil {
		return nil, err
	}
	return materialize[T, P](rows)
}

// GetItemsCount returns the cardinality of the compiled specification.
func (r *Repository[T, P]) GetItemsCount(ctx context.Context, spec Specification) (int, error) {
	return r.container.Count(ctx, spec)
}

// QueryItems executes a raw parameterized query. Parameters are bound
// store-natively by name; never splice untrusted input into the query text.
func (r *Repository[T, P]) QueryItems(ctx context.Context, q Query) ([]P, error) {
	rows, err := r.container.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return materialize[T, P](rows)
}

func materialize[T any, P interface {
	*T
	Entity
}](rows []json.RawMessage) ([]P, error) {
	items := make([]P, 0, len(rows))
	for _, row := range rows {
		item := P(new(T))
		if err := json.Unmarshal(row, item); err != nil {
			return nil, fmt.Errorf("docstore: unmarshal item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

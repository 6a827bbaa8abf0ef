package client

import "context"

// Store is the uniform data-access surface the application programs against.
// Both the REST-backed and the local bbolt implementations satisfy it, so
// call sites never branch on which mode is active.
type Store interface {
	// GetAll returns every record in table visible to the current session.
	GetAll(ctx context.Context, table string) ([]Record, error)
	// GetByID returns the record with the given id or ErrNotFound.
	GetByID(ctx context.Context, table, id string) (Record, error)
	// GetOneByField returns the first record whose field equals value,
	// or ErrNotFound.
	GetOneByField(ctx context.Context, table, field string, value any) (Record, error)
	// Query returns all records matching every filter field (exact-match
	// conjunction). An empty filters map matches everything.
	Query(ctx context.Context, table string, filters Record) ([]Record, error)
	// Insert stores data and returns the record with its assigned id and
	// timestamps.
	Insert(ctx context.Context, table string, data Record) (Record, error)
	// Update merges data into the record with the given id and returns the
	// updated record. ErrNotFound if no such record exists.
	Update(ctx context.Context, table, id string, data Record) (Record, error)
	// Delete removes the record with the given id. ErrNotFound if absent.
	Delete(ctx context.Context, table, id string) error
}

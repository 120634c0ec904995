package dataset

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for catalog record persistence operations.
// Every mutation is a single atomic operation; no record is ever partially
// written.
type Repository interface {
	// Retrieve returns the record with the given ID, or nil if none exists
	Retrieve(ctx context.Context, id uuid.UUID) (*Dataset, error)

	// Upsert inserts a new record or, if one already exists for the same
	// (storageSystem, storageSourceID) pair, replaces its metadata in place.
	// On return the dataset carries its assigned ID and creation time.
	Upsert(ctx context.Context, ds *Dataset) (*Dataset, error)

	// Update replaces the source and metadata fields of an existing record;
	// the record's ID must already exist
	Update(ctx context.Context, ds *Dataset) error

	// Delete removes a record by ID and reports whether a row was actually
	// removed. Deleting an absent record returns false, not an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Find returns every stored record whose (storageSystem, storageSourceID)
	// pair appears in the given map. Systems mapped to an empty set contribute
	// nothing; if every set is empty the result is empty without touching the
	// store.
	Find(ctx context.Context, sourceIDs map[StorageSystem][]string) ([]*Dataset, error)

	// ListAll returns every stored record. Only callers holding the global
	// read override may use this.
	ListAll(ctx context.Context) ([]*Dataset, error)

	// ListSourceIDs returns the storage source IDs of every record owned by
	// the given storage system. Used by the locally-owned adapter, whose
	// visible objects are exactly the catalogued ones.
	ListSourceIDs(ctx context.Context, system StorageSystem) ([]string, error)
}

package dataset

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dataset represents the catalog record aggregate root. It pairs an object
// owned by one of the storage systems with the metadata document the catalog
// stores for it. The (storageSystem, storageSourceID) pair is unique across
// all records; the id is assigned by the store on first persist and never
// reassigned.
type Dataset struct {
	id              uuid.UUID
	storageSourceID string
	storageSystem   StorageSystem
	metadata        json.RawMessage
	creationTime    time.Time
}

// NewDataset creates a transient dataset record that has not been persisted
// yet. The id stays zero until the store assigns one.
func NewDataset(storageSystem StorageSystem, storageSourceID string, metadata json.RawMessage) (*Dataset, error) {
	if !storageSystem.IsValid() {
		return nil, fmt.Errorf("invalid storage system: %q", storageSystem)
	}
	if storageSourceID == "" {
		return nil, fmt.Errorf("storage source ID is required")
	}
	if len(metadata) == 0 {
		return nil, fmt.Errorf("metadata is required")
	}
	if !json.Valid(metadata) {
		return nil, fmt.Errorf("metadata is not valid JSON")
	}

	return &Dataset{
		storageSourceID: storageSourceID,
		storageSystem:   storageSystem,
		metadata:        metadata,
	}, nil
}

// ReconstructDataset reconstructs a dataset record from persistence
func ReconstructDataset(
	id uuid.UUID,
	storageSystem StorageSystem,
	storageSourceID string,
	metadata json.RawMessage,
	creationTime time.Time,
) (*Dataset, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("dataset ID cannot be nil")
	}
	if !storageSystem.IsValid() {
		return nil, fmt.Errorf("invalid storage system: %q", storageSystem)
	}
	if storageSourceID == "" {
		return nil, fmt.Errorf("storage source ID is required")
	}

	return &Dataset{
		id:              id,
		storageSourceID: storageSourceID,
		storageSystem:   storageSystem,
		metadata:        metadata,
		creationTime:    creationTime,
	}, nil
}

// ID returns the catalog identifier
func (d *Dataset) ID() uuid.UUID {
	return d.id
}

// StorageSourceID returns the back-end's own identifier for the object
func (d *Dataset) StorageSourceID() string {
	return d.storageSourceID
}

// StorageSystem returns the owning storage system
func (d *Dataset) StorageSystem() StorageSystem {
	return d.storageSystem
}

// Metadata returns the stored metadata document
func (d *Dataset) Metadata() json.RawMessage {
	return d.metadata
}

// CreationTime returns when the record was first persisted
func (d *Dataset) CreationTime() time.Time {
	return d.creationTime
}

// SetID sets the identifier (only for persistence layer use)
func (d *Dataset) SetID(id uuid.UUID) error {
	if d.id != uuid.Nil {
		return fmt.Errorf("dataset ID is already set")
	}
	if id == uuid.Nil {
		return fmt.Errorf("dataset ID cannot be nil")
	}
	d.id = id
	return nil
}

// SetCreationTime sets the creation time (only for persistence layer use)
func (d *Dataset) SetCreationTime(t time.Time) {
	if d.creationTime.IsZero() {
		d.creationTime = t
	}
}

// UpdateMetadata replaces the metadata document
func (d *Dataset) UpdateMetadata(metadata json.RawMessage) error {
	if len(metadata) == 0 {
		return fmt.Errorf("metadata cannot be empty")
	}
	if !json.Valid(metadata) {
		return fmt.Errorf("metadata is not valid JSON")
	}
	d.metadata = metadata
	return nil
}

// UpdateSource repoints the record at a different storage object
func (d *Dataset) UpdateSource(storageSystem StorageSystem, storageSourceID string) error {
	if !storageSystem.IsValid() {
		return fmt.Errorf("invalid storage system: %q", storageSystem)
	}
	if storageSourceID == "" {
		return fmt.Errorf("storage source ID cannot be empty")
	}
	d.storageSystem = storageSystem
	d.storageSourceID = storageSourceID
	return nil
}

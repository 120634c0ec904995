package dataset

import "errors"

var (
	// ErrDatasetNotFound indicates no catalog record has the requested ID
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrInvalidStorageSystem indicates an unrecognized storage system tag
	ErrInvalidStorageSystem = errors.New("invalid storage system")

	// ErrInvalidAccessLevel indicates an unrecognized access level value
	ErrInvalidAccessLevel = errors.New("invalid dataset access level")
)

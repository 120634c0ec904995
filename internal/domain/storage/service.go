// Package storage defines the uniform contract every storage back-end adapter
// implements, together with the transient preview and health types exchanged
// across it.
package storage

import (
	"context"

	"catalog/internal/domain/dataset"
)

// SystemStatus is the result of a health probe against one storage back-end.
type SystemStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ColumnMetadata describes one column of a previewable table.
type ColumnMetadata struct {
	Name     string `json:"name"`
	ArrayOf  bool   `json:"arrayOf,omitempty"`
	DataType string `json:"dataType,omitempty"`
}

// TableMetadata describes the structure of one previewable table.
type TableMetadata struct {
	Name     string           `json:"name"`
	HasData  bool             `json:"hasData"`
	RowCount int              `json:"rowCount"`
	Columns  []ColumnMetadata `json:"columns,omitempty"`
}

// TablePreview holds a bounded sample of rows from one table.
type TablePreview struct {
	Columns []ColumnMetadata `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// StorageSystemService is the capability set implemented identically by every
// storage back-end adapter. The caller's bearer token is passed explicitly on
// every call; adapters hold no per-request state and never cache visibility
// across calls.
type StorageSystemService interface {
	// Status is a side-effect-free health probe. It never returns an error
	// and never retries: failures are captured as a non-OK status with a
	// diagnostic message.
	Status(ctx context.Context) SystemStatus

	// GetDatasets enumerates every object visible to the calling principal in
	// this storage system, each paired with the principal's resolved access
	// information.
	GetDatasets(ctx context.Context, token string) (map[string]dataset.StorageSystemInformation, error)

	// GetDataset resolves access information for exactly one object
	GetDataset(ctx context.Context, token string, sourceID string) (dataset.StorageSystemInformation, error)

	// GetRole resolves only the caller's access level for one object; cheaper
	// than GetDataset, used on the write path
	GetRole(ctx context.Context, token string, sourceID string) (dataset.DatasetAccessLevel, error)

	// GetPreviewTables lists the previewable tables of one object
	GetPreviewTables(ctx context.Context, token string, sourceID string) ([]TableMetadata, error)

	// PreviewTable returns up to maxRows rows of one table; fails with a not
	// found error if the table does not exist in the object
	PreviewTable(ctx context.Context, token string, sourceID string, tableName string, maxRows int) (*TablePreview, error)

	// ExportToWorkspace triggers a data copy into the destination workspace.
	// Adapters that do not support export fail with a bad request error; that
	// is an expected outcome, not a transport failure.
	ExportToWorkspace(ctx context.Context, token string, sourceID string, workspaceID string) error
}

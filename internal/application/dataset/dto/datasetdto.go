// Package dto defines the request and response shapes exchanged between the
// dataset usecases and the transport layer.
package dto

import "encoding/json"

// DatasetListResponse wraps the enriched metadata documents of every dataset
// visible to the caller.
type DatasetListResponse struct {
	Result []map[string]any `json:"result"`
}

// CreateDatasetCommand carries a create/upsert request.
type CreateDatasetCommand struct {
	StorageSystem   string          `json:"storageSystem"`
	StorageSourceID string          `json:"storageSourceId"`
	Metadata        json.RawMessage `json:"metadata"`
}

// CreateDatasetResponse returns the generated catalog identifier.
type CreateDatasetResponse struct {
	ID string `json:"id"`
}

// ExportDatasetCommand carries an export request.
type ExportDatasetCommand struct {
	WorkspaceID string `json:"workspaceId"`
}

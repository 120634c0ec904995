package storage

import (
	"context"
	"fmt"

	"catalog/internal/domain/dataset"
	"catalog/internal/domain/storage"
	apperrors "catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// ExternalSystemService is the adapter for objects the catalog owns records
// for but that live outside any federated system. There is no backing
// permission model: every catalog-visible object is DISCOVERER for every
// caller, preview is empty, and export is unsupported. It exists to give
// every storage system the same contract.
type ExternalSystemService struct {
	repo   dataset.Repository
	logger logger.Interface
}

// NewExternalSystemService creates a new external system adapter.
func NewExternalSystemService(repo dataset.Repository, logger logger.Interface) *ExternalSystemService {
	return &ExternalSystemService{
		repo:   repo,
		logger: logger,
	}
}

var _ storage.StorageSystemService = (*ExternalSystemService)(nil)

// Status reports the external system as healthy; it has no remote component.
func (s *ExternalSystemService) Status(ctx context.Context) storage.SystemStatus {
	return storage.SystemStatus{OK: true}
}

// GetDatasets returns every catalogued external record at DISCOVERER level.
func (s *ExternalSystemService) GetDatasets(ctx context.Context, token string) (map[string]dataset.StorageSystemInformation, error) {
	sourceIDs, err := s.repo.ListSourceIDs(ctx, dataset.StorageSystemExternal)
	if err != nil {
		s.logger.Errorw("failed to list external source IDs", "error", err)
		return nil, fmt.Errorf("failed to list external datasets: %w", err)
	}

	result := make(map[string]dataset.StorageSystemInformation, len(sourceIDs))
	for _, sourceID := range sourceIDs {
		result[sourceID] = dataset.StorageSystemInformation{AccessLevel: dataset.AccessLevelDiscoverer}
	}
	return result, nil
}

// GetDataset resolves access information for one external object.
func (s *ExternalSystemService) GetDataset(ctx context.Context, token string, sourceID string) (dataset.StorageSystemInformation, error) {
	return dataset.StorageSystemInformation{AccessLevel: dataset.AccessLevelDiscoverer}, nil
}

// GetRole resolves the caller's access level for one external object.
func (s *ExternalSystemService) GetRole(ctx context.Context, token string, sourceID string) (dataset.DatasetAccessLevel, error) {
	return dataset.AccessLevelDiscoverer, nil
}

// GetPreviewTables returns no tables; external objects are not previewable.
func (s *ExternalSystemService) GetPreviewTables(ctx context.Context, token string, sourceID string) ([]storage.TableMetadata, error) {
	return []storage.TableMetadata{}, nil
}

// PreviewTable always fails: external objects expose no tables.
func (s *ExternalSystemService) PreviewTable(ctx context.Context, token string, sourceID string, tableName string, maxRows int) (*storage.TablePreview, error) {
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("table %q not found in external dataset", tableName))
}

// ExportToWorkspace is not supported for external datasets.
func (s *ExternalSystemService) ExportToWorkspace(ctx context.Context, token string, sourceID string, workspaceID string) error {
	return apperrors.NewBadRequestError("export to workspace is not supported for external datasets")
}

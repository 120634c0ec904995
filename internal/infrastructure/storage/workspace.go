package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"catalog/internal/domain/dataset"
	"catalog/internal/domain/storage"
	sharedConfig "catalog/internal/shared/config"
	apperrors "catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
	"catalog/internal/shared/mapper"
)

// Workspace native access levels mapped onto the catalog scale. A workspace
// writer gets no more than catalog read: metadata writes are gated on
// ownership, not workspace write access.
var workspaceRoleMap = map[string]dataset.DatasetAccessLevel{
	"PROJECT_OWNER": dataset.AccessLevelOwner,
	"OWNER":         dataset.AccessLevelOwner,
	"WRITER":        dataset.AccessLevelReader,
	"READER":        dataset.AccessLevelReader,
}

// WorkspaceService adapts the workspace manager API onto the uniform storage
// system contract.
type WorkspaceService struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

// NewWorkspaceService creates a new workspace manager adapter.
func NewWorkspaceService(cfg *sharedConfig.RawlsConfig, logger logger.Interface) *WorkspaceService {
	timeout := defaultUpstreamTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &WorkspaceService{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ storage.StorageSystemService = (*WorkspaceService)(nil)

type workspaceListItem struct {
	AccessLevel string `json:"accessLevel"`
	Workspace   struct {
		WorkspaceID string `json:"workspaceId"`
	} `json:"workspace"`
}

type workspaceAccessResponse struct {
	AccessLevel string `json:"accessLevel"`
}

type entityTypeMetadata struct {
	Count          int      `json:"count"`
	AttributeNames []string `json:"attributeNames"`
}

type entityQueryResponse struct {
	Results []struct {
		Name       string         `json:"name"`
		Attributes map[string]any `json:"attributes"`
	} `json:"results"`
}

// Status probes the workspace manager health endpoint.
func (s *WorkspaceService) Status(ctx context.Context) storage.SystemStatus {
	ok, message := probeStatus(ctx, s.httpClient, s.baseURL+"/status")
	return storage.SystemStatus{OK: ok, Message: message}
}

// GetDatasets enumerates every workspace visible to the caller with the
// caller's resolved access level. Workspaces carry no phsId.
func (s *WorkspaceService) GetDatasets(ctx context.Context, token string) (map[string]dataset.StorageSystemInformation, error) {
	endpoint := s.baseURL + "/api/workspaces?fields=workspace.workspaceId,accessLevel"

	var items []workspaceListItem
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &items); err != nil {
		s.logger.Errorw("failed to enumerate workspaces", "error", err)
		return nil, err
	}

	result := make(map[string]dataset.StorageSystemInformation, len(items))
	for _, item := range items {
		result[item.Workspace.WorkspaceID] = dataset.StorageSystemInformation{
			AccessLevel: dataset.HighestLevelFromRoles([]string{item.AccessLevel}, workspaceRoleMap),
		}
	}
	return result, nil
}

// GetDataset resolves access information for one workspace.
func (s *WorkspaceService) GetDataset(ctx context.Context, token string, sourceID string) (dataset.StorageSystemInformation, error) {
	level, err := s.GetRole(ctx, token, sourceID)
	if err != nil {
		return dataset.StorageSystemInformation{}, err
	}
	return dataset.StorageSystemInformation{AccessLevel: level}, nil
}

// GetRole resolves the caller's access level for one workspace.
func (s *WorkspaceService) GetRole(ctx context.Context, token string, sourceID string) (dataset.DatasetAccessLevel, error) {
	endpoint := fmt.Sprintf("%s/api/workspaces/id/%s?fields=accessLevel", s.baseURL, url.PathEscape(sourceID))

	var resp workspaceAccessResponse
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		s.logger.Errorw("failed to retrieve workspace access level", "source_id", sourceID, "error", err)
		return "", err
	}

	return dataset.HighestLevelFromRoles([]string{resp.AccessLevel}, workspaceRoleMap), nil
}

// GetPreviewTables lists the workspace's entity types as previewable tables.
func (s *WorkspaceService) GetPreviewTables(ctx context.Context, token string, sourceID string) ([]storage.TableMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/workspaces/id/%s/entities", s.baseURL, url.PathEscape(sourceID))

	var resp map[string]entityTypeMetadata
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		s.logger.Errorw("failed to retrieve workspace entity types", "source_id", sourceID, "error", err)
		return nil, err
	}

	tables := make([]storage.TableMetadata, 0, len(resp))
	for name, metadata := range resp {
		tables = append(tables, storage.TableMetadata{
			Name:     name,
			HasData:  metadata.Count > 0,
			RowCount: metadata.Count,
			Columns: mapper.MapSlice(metadata.AttributeNames, func(attribute string) storage.ColumnMetadata {
				return storage.ColumnMetadata{Name: attribute}
			}),
		})
	}
	return tables, nil
}

// PreviewTable returns up to maxRows entities of one entity type.
func (s *WorkspaceService) PreviewTable(ctx context.Context, token string, sourceID string, tableName string, maxRows int) (*storage.TablePreview, error) {
	tables, err := s.GetPreviewTables(ctx, token, sourceID)
	if err != nil {
		return nil, err
	}

	var columns []storage.ColumnMetadata
	found := false
	for _, table := range tables {
		if table.Name == tableName {
			columns = table.Columns
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("table %q not found in workspace", tableName))
	}

	endpoint := fmt.Sprintf("%s/api/workspaces/id/%s/entityQuery/%s?page=1&pageSize=%d",
		s.baseURL, url.PathEscape(sourceID), url.PathEscape(tableName), maxRows)

	var resp entityQueryResponse
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		s.logger.Errorw("failed to query workspace entities",
			"source_id", sourceID, "table", tableName, "error", err)
		return nil, err
	}

	rows := make([]map[string]any, 0, len(resp.Results))
	for _, entity := range resp.Results {
		row := make(map[string]any, len(entity.Attributes)+1)
		row["name"] = entity.Name
		for attribute, value := range entity.Attributes {
			row[attribute] = value
		}
		rows = append(rows, row)
	}

	return &storage.TablePreview{Columns: columns, Rows: rows}, nil
}

// ExportToWorkspace copies the workspace's data into the destination workspace.
func (s *WorkspaceService) ExportToWorkspace(ctx context.Context, token string, sourceID string, workspaceID string) error {
	endpoint := fmt.Sprintf("%s/api/workspaces/id/%s/exportCopy", s.baseURL, url.PathEscape(sourceID))
	body := map[string]string{"destinationWorkspaceId": workspaceID}

	if err := doJSON(ctx, s.httpClient, http.MethodPost, endpoint, token, body, nil); err != nil {
		s.logger.Errorw("failed to export workspace data",
			"source_id", sourceID, "destination_workspace_id", workspaceID, "error", err)
		return err
	}

	s.logger.Infow("workspace export started",
		"source_id", sourceID, "destination_workspace_id", workspaceID)
	return nil
}

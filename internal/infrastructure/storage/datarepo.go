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

const (
	defaultUpstreamTimeout = 20 * time.Second

	// Upper bound on one snapshot enumeration page; visibility is resolved
	// fresh on every call, nothing is cached.
	snapshotEnumerateLimit = 1000
)

// Data repo native roles mapped onto the catalog access-level scale.
var dataRepoRoleMap = map[string]dataset.DatasetAccessLevel{
	"admin":      dataset.AccessLevelOwner,
	"steward":    dataset.AccessLevelOwner,
	"custodian":  dataset.AccessLevelOwner,
	"reader":     dataset.AccessLevelReader,
	"discoverer": dataset.AccessLevelDiscoverer,
}

// DataRepoService adapts the tabular data repository API onto the uniform
// storage system contract.
type DataRepoService struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

// NewDataRepoService creates a new data repo adapter.
func NewDataRepoService(cfg *sharedConfig.DataRepoConfig, logger logger.Interface) *DataRepoService {
	timeout := defaultUpstreamTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &DataRepoService{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ storage.StorageSystemService = (*DataRepoService)(nil)

type snapshotSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	PhsID string `json:"phsId"`
}

type enumerateSnapshotsResponse struct {
	Items   []snapshotSummary   `json:"items"`
	RoleMap map[string][]string `json:"roleMap"`
}

type snapshotColumn struct {
	Name     string `json:"name"`
	Datatype string `json:"datatype"`
	ArrayOf  bool   `json:"array_of"`
}

type snapshotTablesResponse struct {
	Tables []struct {
		Name     string           `json:"name"`
		RowCount int              `json:"rowCount"`
		Columns  []snapshotColumn `json:"columns"`
	} `json:"tables"`
}

type snapshotDataResponse struct {
	Result []map[string]any `json:"result"`
}

// Status probes the data repo health endpoint.
func (s *DataRepoService) Status(ctx context.Context) storage.SystemStatus {
	ok, message := probeStatus(ctx, s.httpClient, s.baseURL+"/status")
	return storage.SystemStatus{OK: ok, Message: message}
}

// GetDatasets enumerates every snapshot visible to the caller with the
// caller's resolved access level and the snapshot's phsId when present.
func (s *DataRepoService) GetDatasets(ctx context.Context, token string) (map[string]dataset.StorageSystemInformation, error) {
	endpoint := fmt.Sprintf("%s/api/repository/v1/snapshots?limit=%d", s.baseURL, snapshotEnumerateLimit)

	var resp enumerateSnapshotsResponse
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		s.logger.Errorw("failed to enumerate data repo snapshots", "error", err)
		return nil, err
	}

	result := make(map[string]dataset.StorageSystemInformation, len(resp.Items))
	for _, item := range resp.Items {
		result[item.ID] = dataset.StorageSystemInformation{
			AccessLevel: dataset.HighestLevelFromRoles(resp.RoleMap[item.ID], dataRepoRoleMap),
			PhsID:       item.PhsID,
		}
	}
	return result, nil
}

// GetDataset resolves access information for one snapshot.
func (s *DataRepoService) GetDataset(ctx context.Context, token string, sourceID string) (dataset.StorageSystemInformation, error) {
	level, err := s.GetRole(ctx, token, sourceID)
	if err != nil {
		return dataset.StorageSystemInformation{}, err
	}

	endpoint := fmt.Sprintf("%s/api/repository/v1/snapshots/%s/summary", s.baseURL, url.PathEscape(sourceID))
	var summary snapshotSummary
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &summary); err != nil {
		s.logger.Errorw("failed to retrieve snapshot summary", "source_id", sourceID, "error", err)
		return dataset.StorageSystemInformation{}, err
	}

	return dataset.StorageSystemInformation{AccessLevel: level, PhsID: summary.PhsID}, nil
}

// GetRole resolves the caller's access level for one snapshot.
func (s *DataRepoService) GetRole(ctx context.Context, token string, sourceID string) (dataset.DatasetAccessLevel, error) {
	endpoint := fmt.Sprintf("%s/api/repository/v1/snapshots/%s/roles", s.baseURL, url.PathEscape(sourceID))

	var roles []string
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &roles); err != nil {
		s.logger.Errorw("failed to retrieve snapshot roles", "source_id", sourceID, "error", err)
		return "", err
	}

	return dataset.HighestLevelFromRoles(roles, dataRepoRoleMap), nil
}

// GetPreviewTables lists the snapshot's tables.
func (s *DataRepoService) GetPreviewTables(ctx context.Context, token string, sourceID string) ([]storage.TableMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/repository/v1/snapshots/%s?include=TABLES", s.baseURL, url.PathEscape(sourceID))

	var resp snapshotTablesResponse
	if err := doJSON(ctx, s.httpClient, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		s.logger.Errorw("failed to retrieve snapshot tables", "source_id", sourceID, "error", err)
		return nil, err
	}

	tables := make([]storage.TableMetadata, 0, len(resp.Tables))
	for _, table := range resp.Tables {
		tables = append(tables, storage.TableMetadata{
			Name:     table.Name,
			HasData:  table.RowCount > 0,
			RowCount: table.RowCount,
			Columns: mapper.MapSlice(table.Columns, func(column snapshotColumn) storage.ColumnMetadata {
				return storage.ColumnMetadata{
					Name:     column.Name,
					DataType: column.Datatype,
					ArrayOf:  column.ArrayOf,
				}
			}),
		})
	}
	return tables, nil
}

// PreviewTable returns up to maxRows rows from one snapshot table.
func (s *DataRepoService) PreviewTable(ctx context.Context, token string, sourceID string, tableName string, maxRows int) (*storage.TablePreview, error) {
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
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("table %q not found in snapshot", tableName))
	}

	endpoint := fmt.Sprintf("%s/api/repository/v1/snapshots/%s/data/%s",
		s.baseURL, url.PathEscape(sourceID), url.PathEscape(tableName))
	body := map[string]any{"limit": maxRows, "offset": 0}

	var resp snapshotDataResponse
	if err := doJSON(ctx, s.httpClient, http.MethodPost, endpoint, token, body, &resp); err != nil {
		s.logger.Errorw("failed to preview snapshot table",
			"source_id", sourceID, "table", tableName, "error", err)
		return nil, err
	}

	return &storage.TablePreview{Columns: columns, Rows: resp.Result}, nil
}

// ExportToWorkspace is not supported by the data repo adapter; snapshot data
// stays in the repository.
func (s *DataRepoService) ExportToWorkspace(ctx context.Context, token string, sourceID string, workspaceID string) error {
	return apperrors.NewBadRequestError("export to workspace is not supported for data repo datasets")
}

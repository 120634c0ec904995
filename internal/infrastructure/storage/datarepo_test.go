package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain/dataset"
	sharedConfig "catalog/internal/shared/config"
	apperrors "catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

func newDataRepoService(baseURL string) *DataRepoService {
	return NewDataRepoService(&sharedConfig.DataRepoConfig{BaseURL: baseURL, TimeoutSeconds: 5}, logger.NewLogger())
}

func TestDataRepoGetDatasets_ResolvesHighestRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/repository/v1/snapshots", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "snap-1", "name": "study one", "phsId": "1234"},
				{"id": "snap-2", "name": "study two"},
			},
			"roleMap": map[string][]string{
				"snap-1": {"discoverer", "steward"},
				"snap-2": {"reader", "unknown_role"},
			},
		})
	}))
	defer server.Close()

	svc := newDataRepoService(server.URL)
	result, err := svc.GetDatasets(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, dataset.AccessLevelOwner, result["snap-1"].AccessLevel)
	assert.Equal(t, "1234", result["snap-1"].PhsID)
	assert.Equal(t, dataset.AccessLevelReader, result["snap-2"].AccessLevel)
	assert.Empty(t, result["snap-2"].PhsID)
}

func TestDataRepoGetDatasets_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := newDataRepoService(server.URL)
	_, err := svc.GetDatasets(context.Background(), "tok")

	require.Error(t, err)
	assert.True(t, apperrors.IsStorageSystemError(err))
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
}

func TestDataRepoGetRole_NoRecognizedRoles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/repository/v1/snapshots/snap-1/roles", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]string{"mystery"})
	}))
	defer server.Close()

	svc := newDataRepoService(server.URL)
	level, err := svc.GetRole(context.Background(), "tok", "snap-1")

	require.NoError(t, err)
	assert.Equal(t, dataset.AccessLevelNoAccess, level)
}

func TestDataRepoPreviewTable_UnknownTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tables": []map[string]any{{"name": "participant", "rowCount": 10}},
		})
	}))
	defer server.Close()

	svc := newDataRepoService(server.URL)
	_, err := svc.PreviewTable(context.Background(), "tok", "snap-1", "nope", 10)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDataRepoPreviewTable_ReturnsRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/repository/v1/snapshots/snap-1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"tables": []map[string]any{{
					"name":     "participant",
					"rowCount": 2,
					"columns": []map[string]any{
						{"name": "participant_id", "datatype": "string"},
					},
				}},
			})
		case "/api/repository/v1/snapshots/snap-1/data/participant":
			assert.Equal(t, http.MethodPost, r.Method)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.EqualValues(t, 2, body["limit"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{"participant_id": "p1"},
					{"participant_id": "p2"},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc := newDataRepoService(server.URL)
	preview, err := svc.PreviewTable(context.Background(), "tok", "snap-1", "participant", 2)

	require.NoError(t, err)
	require.Len(t, preview.Rows, 2)
	assert.Equal(t, "participant_id", preview.Columns[0].Name)
}

func TestDataRepoExport_Unsupported(t *testing.T) {
	svc := newDataRepoService("http://unused")
	err := svc.ExportToWorkspace(context.Background(), "tok", "snap-1", "ws-1")

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeBadRequest, appErr.Type)
}

func TestDataRepoStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := newDataRepoService(server.URL)
	status := svc.Status(context.Background())
	assert.True(t, status.OK)

	server.Close()
	status = svc.Status(context.Background())
	assert.False(t, status.OK)
}

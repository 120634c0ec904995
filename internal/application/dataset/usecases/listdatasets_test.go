package usecases

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"catalog/internal/domain/dataset"
	"catalog/internal/shared/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeDataset(t *testing.T, system dataset.StorageSystem, sourceID, metadata string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ReconstructDataset(uuid.New(), system, sourceID, json.RawMessage(metadata), time.Now())
	require.NoError(t, err)
	return ds
}

func TestListDatasets_EnrichesMetadataWithAccessInformation(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	tdr.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{
		"snap-1": {AccessLevel: dataset.AccessLevelOwner, PhsID: "1234"},
	}, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(false, nil)
	repo.On("Find", mock.Anything, map[dataset.StorageSystem][]string{
		dataset.StorageSystemTerraDataRepo: {"snap-1"},
	}).Return([]*dataset.Dataset{ds}, nil)

	uc := NewListDatasetsUseCase(services, repo, sam, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, resp.Result, 1)
	doc := resp.Result[0]
	assert.Equal(t, "x", doc["name"])
	assert.Equal(t, "owner", doc["accessLevel"])
	assert.Equal(t, ds.ID().String(), doc["id"])
	assert.Equal(t, "1234", doc["phsId"])
	assert.Equal(t, "https://www.ncbi.nlm.nih.gov/projects/gap/cgi-bin/study.cgi?study_id=1234", doc["requestAccessURL"])
}

func TestListDatasets_KeepsExistingRequestAccessURL(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"requestAccessURL":"https://example.org/apply"}`)

	tdr.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{
		"snap-1": {AccessLevel: dataset.AccessLevelReader, PhsID: "42"},
	}, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(false, nil)
	repo.On("Find", mock.Anything, mock.Anything).Return([]*dataset.Dataset{ds}, nil)

	uc := NewListDatasetsUseCase(services, repo, sam, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "https://example.org/apply", resp.Result[0]["requestAccessURL"])
	assert.Equal(t, "42", resp.Result[0]["phsId"])
}

func TestListDatasets_AdminBrowsingGetsDefaultInformation(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	// The caller holds no role on this object; it only shows up because the
	// global read override lists everything.
	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-other", `{"name":"y"}`)

	tdr.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{}, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(true, nil)
	repo.On("ListAll", mock.Anything).Return([]*dataset.Dataset{ds}, nil)

	uc := NewListDatasetsUseCase(services, repo, sam, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, resp.Result, 1)
	doc := resp.Result[0]
	assert.Equal(t, "reader", doc["accessLevel"])
	assert.NotContains(t, doc, "phsId")
	assert.NotContains(t, doc, "requestAccessURL")
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestListDatasets_ExcludesNoAccessEntries(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	visible := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"a"}`)
	hidden := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-2", `{"name":"b"}`)

	tdr.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{
		"snap-1": {AccessLevel: dataset.AccessLevelDiscoverer},
		"snap-2": {AccessLevel: dataset.AccessLevelNoAccess},
	}, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(false, nil)
	repo.On("Find", mock.Anything, mock.Anything).Return([]*dataset.Dataset{visible, hidden}, nil)

	uc := NewListDatasetsUseCase(services, repo, sam, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "a", resp.Result[0]["name"])
}

func TestListDatasets_AbortsWhenAnySystemFails(t *testing.T) {
	tdr := new(mockStorageService)
	wks := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{
		dataset.StorageSystemTerraDataRepo:  tdr,
		dataset.StorageSystemTerraWorkspace: wks,
	}

	tdr.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{
		"snap-1": {AccessLevel: dataset.AccessLevelOwner},
	}, nil)
	wks.On("GetDatasets", mock.Anything, "tok").Return(nil, errors.NewStorageSystemError("workspace manager unavailable", 503))

	uc := NewListDatasetsUseCase(services, repo, sam, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.IsStorageSystemError(err))
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestListDatasets_QueriesAllSystemsConcurrently(t *testing.T) {
	tdr := new(mockStorageService)
	wks := new(mockStorageService)
	ext := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{
		dataset.StorageSystemTerraDataRepo:  tdr,
		dataset.StorageSystemTerraWorkspace: wks,
		dataset.StorageSystemExternal:       ext,
	}

	tdr.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{}, nil)
	wks.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{}, nil)
	ext.On("GetDatasets", mock.Anything, "tok").Return(map[string]dataset.StorageSystemInformation{}, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(false, nil)
	repo.On("Find", mock.Anything, mock.Anything).Return([]*dataset.Dataset{}, nil)

	uc := NewListDatasetsUseCase(services, repo, sam, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok")

	require.NoError(t, err)
	assert.Empty(t, resp.Result)
	tdr.AssertExpectations(t)
	wks.AssertExpectations(t)
	ext.AssertExpectations(t)
}

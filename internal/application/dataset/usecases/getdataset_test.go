package usecases

import (
	"context"
	"testing"

	"catalog/internal/domain/dataset"
	"catalog/internal/shared/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetDataset_EnrichesWithResolvedAccess(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	repo.On("Retrieve", mock.Anything, ds.ID()).Return(ds, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(false, nil)
	tdr.On("GetRole", mock.Anything, "tok", "snap-1").Return(dataset.AccessLevelReader, nil)
	tdr.On("GetDataset", mock.Anything, "tok", "snap-1").Return(dataset.StorageSystemInformation{
		AccessLevel: dataset.AccessLevelReader,
		PhsID:       "789",
	}, nil)

	uc := NewGetDatasetUseCase(services, repo, sam, newTestLogger())
	doc, err := uc.Execute(context.Background(), "tok", ds.ID())

	require.NoError(t, err)
	assert.Equal(t, "reader", doc["accessLevel"])
	assert.Equal(t, "789", doc["phsId"])
	assert.Equal(t, ds.ID().String(), doc["id"])
}

func TestGetDataset_FallsBackToDefaultWhenResolutionFails(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	repo.On("Retrieve", mock.Anything, ds.ID()).Return(ds, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(true, nil)
	tdr.On("GetDataset", mock.Anything, "tok", "snap-1").
		Return(dataset.StorageSystemInformation{}, errors.NewStorageSystemError("snapshot roles unavailable", 502))

	uc := NewGetDatasetUseCase(services, repo, sam, newTestLogger())
	doc, err := uc.Execute(context.Background(), "tok", ds.ID())

	require.NoError(t, err)
	assert.Equal(t, "reader", doc["accessLevel"])
	assert.NotContains(t, doc, "phsId")
	assert.NotContains(t, doc, "requestAccessURL")
}

func TestGetDataset_NotFound(t *testing.T) {
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	id := uuid.New()

	repo.On("Retrieve", mock.Anything, id).Return(nil, nil)

	uc := NewGetDatasetUseCase(StorageServices{}, repo, sam, newTestLogger())
	doc, err := uc.Execute(context.Background(), "tok", id)

	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.IsNotFoundError(err))
	sam.AssertNotCalled(t, "HasGlobalAction", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDataset_ForbiddenWithoutAnyAccess(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	repo.On("Retrieve", mock.Anything, ds.ID()).Return(ds, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionReadAnyMetadata).Return(false, nil)
	tdr.On("GetRole", mock.Anything, "tok", "snap-1").Return(dataset.AccessLevelDiscoverer, nil)

	uc := NewGetDatasetUseCase(services, repo, sam, newTestLogger())
	doc, err := uc.Execute(context.Background(), "tok", ds.ID())

	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.IsForbiddenError(err))
	tdr.AssertNotCalled(t, "GetDataset", mock.Anything, mock.Anything, mock.Anything)
}

package usecases

import (
	"context"
	"encoding/json"
	"testing"

	"catalog/internal/application/dataset/dto"
	"catalog/internal/domain/dataset"
	"catalog/internal/shared/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDataset_Success(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	validator := new(mockMetadataValidator)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	stored := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	validator.On("Validate", mock.Anything).Return(nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionCreateMetadata).Return(true, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(stored, nil)

	uc := NewCreateDatasetUseCase(services, repo, sam, validator, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok", dto.CreateDatasetCommand{
		StorageSystem:   "TERRA_DATA_REPO",
		StorageSourceID: "snap-1",
		Metadata:        json.RawMessage(`{"name":"x"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, stored.ID().String(), resp.ID)
}

func TestCreateDataset_RejectsSchemaViolations(t *testing.T) {
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	validator := new(mockMetadataValidator)

	validator.On("Validate", mock.Anything).Return([]string{"missing required property 'name'"})

	uc := NewCreateDatasetUseCase(StorageServices{}, repo, sam, validator, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok", dto.CreateDatasetCommand{
		StorageSystem:   "TERRA_DATA_REPO",
		StorageSourceID: "snap-1",
		Metadata:        json.RawMessage(`{}`),
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "missing required property")
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	sam.AssertNotCalled(t, "HasGlobalAction", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDataset_RejectsUnknownStorageSystem(t *testing.T) {
	uc := NewCreateDatasetUseCase(StorageServices{}, new(mockDatasetRepository), new(mockSamService), new(mockMetadataValidator), newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok", dto.CreateDatasetCommand{
		StorageSystem:   "GOOGLE_DRIVE",
		StorageSourceID: "doc-1",
		Metadata:        json.RawMessage(`{}`),
	})

	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestCreateDataset_PerObjectOwnerMayRegister(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	validator := new(mockMetadataValidator)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	stored := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	validator.On("Validate", mock.Anything).Return(nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionCreateMetadata).Return(false, nil)
	tdr.On("GetRole", mock.Anything, "tok", "snap-1").Return(dataset.AccessLevelOwner, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(stored, nil)

	uc := NewCreateDatasetUseCase(services, repo, sam, validator, newTestLogger())
	_, err := uc.Execute(context.Background(), "tok", dto.CreateDatasetCommand{
		StorageSystem:   "tdr",
		StorageSourceID: "snap-1",
		Metadata:        json.RawMessage(`{"name":"x"}`),
	})

	require.NoError(t, err)
	tdr.AssertExpectations(t)
}

func TestCreateDataset_ReaderMayNotRegister(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	validator := new(mockMetadataValidator)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	validator.On("Validate", mock.Anything).Return(nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionCreateMetadata).Return(false, nil)
	tdr.On("GetRole", mock.Anything, "tok", "snap-1").Return(dataset.AccessLevelReader, nil)

	uc := NewCreateDatasetUseCase(services, repo, sam, validator, newTestLogger())
	resp, err := uc.Execute(context.Background(), "tok", dto.CreateDatasetCommand{
		StorageSystem:   "tdr",
		StorageSourceID: "snap-1",
		Metadata:        json.RawMessage(`{"name":"x"}`),
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.IsForbiddenError(err))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateDataset_Success(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	validator := new(mockMetadataValidator)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"old"}`)

	repo.On("Retrieve", mock.Anything, ds.ID()).Return(ds, nil)
	validator.On("Validate", mock.Anything).Return(nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionUpdateAnyMetadata).Return(false, nil)
	tdr.On("GetRole", mock.Anything, "tok", "snap-1").Return(dataset.AccessLevelOwner, nil)
	repo.On("Update", mock.Anything, ds).Return(nil)

	uc := NewUpdateDatasetUseCase(services, repo, sam, validator, newTestLogger())
	err := uc.Execute(context.Background(), "tok", ds.ID(), json.RawMessage(`{"name":"new"}`))

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"new"}`, string(ds.Metadata()))
}

func TestUpdateDataset_NotFound(t *testing.T) {
	repo := new(mockDatasetRepository)
	id := uuid.New()
	repo.On("Retrieve", mock.Anything, id).Return(nil, nil)

	uc := NewUpdateDatasetUseCase(StorageServices{}, repo, new(mockSamService), new(mockMetadataValidator), newTestLogger())
	err := uc.Execute(context.Background(), "tok", id, json.RawMessage(`{}`))

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeleteDataset_RequiresDeletePermission(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	repo.On("Retrieve", mock.Anything, ds.ID()).Return(ds, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionDeleteAnyMetadata).Return(false, nil)
	tdr.On("GetRole", mock.Anything, "tok", "snap-1").Return(dataset.AccessLevelReader, nil)

	uc := NewDeleteDatasetUseCase(services, repo, sam, newTestLogger())
	err := uc.Execute(context.Background(), "tok", ds.ID())

	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDataset_Success(t *testing.T) {
	tdr := new(mockStorageService)
	repo := new(mockDatasetRepository)
	sam := new(mockSamService)
	services := StorageServices{dataset.StorageSystemTerraDataRepo: tdr}

	ds := makeDataset(t, dataset.StorageSystemTerraDataRepo, "snap-1", `{"name":"x"}`)

	repo.On("Retrieve", mock.Anything, ds.ID()).Return(ds, nil)
	sam.On("HasGlobalAction", mock.Anything, "tok", dataset.SamActionDeleteAnyMetadata).Return(true, nil)
	repo.On("Delete", mock.Anything, ds.ID()).Return(true, nil)

	uc := NewDeleteDatasetUseCase(services, repo, sam, newTestLogger())
	err := uc.Execute(context.Background(), "tok", ds.ID())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

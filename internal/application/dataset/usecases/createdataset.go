package usecases

import (
	"context"

	"catalog/internal/application/dataset/dto"
	"catalog/internal/domain/dataset"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// CreateDatasetUseCase registers a storage object in the catalog, validating
// the supplied metadata against the schema first.
type CreateDatasetUseCase struct {
	repo      dataset.Repository
	validator MetadataValidator
	auth      *authorizer
	logger    logger.Interface
}

func NewCreateDatasetUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	validator MetadataValidator,
	logger logger.Interface,
) *CreateDatasetUseCase {
	return &CreateDatasetUseCase{
		repo:      repo,
		validator: validator,
		auth:      newAuthorizer(sam, services),
		logger:    logger,
	}
}

// Execute upserts a catalog record. Registering the same (storageSystem,
// storageSourceId) pair twice replaces the stored metadata rather than
// creating a second record.
func (uc *CreateDatasetUseCase) Execute(ctx context.Context, token string, cmd dto.CreateDatasetCommand) (*dto.CreateDatasetResponse, error) {
	system, err := dataset.ParseStorageSystem(cmd.StorageSystem)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	if violations := uc.validator.Validate(cmd.Metadata); len(violations) > 0 {
		return nil, errors.NewValidationErrors(constants.ErrMsgValidationFailed, violations)
	}

	if err := uc.auth.EnsureAction(ctx, token, system, cmd.StorageSourceID, dataset.SamActionCreateMetadata); err != nil {
		return nil, err
	}

	ds, err := dataset.NewDataset(system, cmd.StorageSourceID, cmd.Metadata)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	stored, err := uc.repo.Upsert(ctx, ds)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("dataset registered",
		"dataset_id", stored.ID().String(),
		"storage_system", system.Name(),
		"storage_source_id", cmd.StorageSourceID,
	)
	return &dto.CreateDatasetResponse{ID: stored.ID().String()}, nil
}

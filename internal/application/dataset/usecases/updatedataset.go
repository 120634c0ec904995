package usecases

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"catalog/internal/domain/dataset"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// UpdateDatasetUseCase replaces the metadata document of an existing record.
type UpdateDatasetUseCase struct {
	repo      dataset.Repository
	validator MetadataValidator
	auth      *authorizer
	logger    logger.Interface
}

func NewUpdateDatasetUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	validator MetadataValidator,
	logger logger.Interface,
) *UpdateDatasetUseCase {
	return &UpdateDatasetUseCase{
		repo:      repo,
		validator: validator,
		auth:      newAuthorizer(sam, services),
		logger:    logger,
	}
}

// Execute validates and stores the replacement metadata for one dataset.
func (uc *UpdateDatasetUseCase) Execute(ctx context.Context, token string, id uuid.UUID, metadata json.RawMessage) error {
	ds, err := uc.repo.Retrieve(ctx, id)
	if err != nil {
		return err
	}
	if ds == nil {
		return errors.NewNotFoundError(constants.ErrMsgDatasetNotFound, id.String())
	}

	if violations := uc.validator.Validate(metadata); len(violations) > 0 {
		return errors.NewValidationErrors(constants.ErrMsgValidationFailed, violations)
	}

	if err := uc.auth.EnsureAction(ctx, token, ds.StorageSystem(), ds.StorageSourceID(), dataset.SamActionUpdateAnyMetadata); err != nil {
		return err
	}

	if err := ds.UpdateMetadata(metadata); err != nil {
		return errors.NewBadRequestError(err.Error())
	}
	if err := uc.repo.Update(ctx, ds); err != nil {
		return err
	}

	uc.logger.Infow("dataset metadata updated", "dataset_id", id.String())
	return nil
}

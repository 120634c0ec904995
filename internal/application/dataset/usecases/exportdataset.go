package usecases

import (
	"context"

	"github.com/google/uuid"

	"catalog/internal/application/dataset/dto"
	"catalog/internal/domain/dataset"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/logger"
)

// ExportDatasetUseCase copies a dataset's underlying data into a destination
// workspace, for the storage systems that support it.
type ExportDatasetUseCase struct {
	services StorageServices
	repo     dataset.Repository
	auth     *authorizer
	logger   logger.Interface
}

func NewExportDatasetUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	logger logger.Interface,
) *ExportDatasetUseCase {
	return &ExportDatasetUseCase{
		services: services,
		repo:     repo,
		auth:     newAuthorizer(sam, services),
		logger:   logger,
	}
}

func (uc *ExportDatasetUseCase) Execute(ctx context.Context, token string, id uuid.UUID, cmd dto.ExportDatasetCommand) error {
	if cmd.WorkspaceID == "" {
		return errors.NewBadRequestError("workspaceId is required")
	}

	ds, err := uc.repo.Retrieve(ctx, id)
	if err != nil {
		return err
	}
	if ds == nil {
		return errors.NewNotFoundError(constants.ErrMsgDatasetNotFound, id.String())
	}

	if err := uc.auth.EnsureAction(ctx, token, ds.StorageSystem(), ds.StorageSourceID(), dataset.SamActionReadAnyMetadata); err != nil {
		return err
	}

	svc, err := uc.services.ForSystem(ds.StorageSystem())
	if err != nil {
		return err
	}
	if err := svc.ExportToWorkspace(ctx, token, ds.StorageSourceID(), cmd.WorkspaceID); err != nil {
		return err
	}

	uc.logger.Infow("dataset export started",
		"dataset_id", id.String(),
		"workspace_id", cmd.WorkspaceID,
	)
	return nil
}

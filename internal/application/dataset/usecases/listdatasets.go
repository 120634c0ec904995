package usecases

import (
	"context"
	"sync"

	"catalog/internal/application/dataset/dto"
	"catalog/internal/domain/dataset"
	"catalog/internal/shared/errors"
	"catalog/internal/shared/goroutine"
	"catalog/internal/shared/logger"
)

// ListDatasetsUseCase returns every dataset the caller may see, with metadata
// enriched by the access level each storage system reports.
type ListDatasetsUseCase struct {
	services StorageServices
	repo     dataset.Repository
	sam      SamService
	logger   logger.Interface
}

func NewListDatasetsUseCase(
	services StorageServices,
	repo dataset.Repository,
	sam SamService,
	logger logger.Interface,
) *ListDatasetsUseCase {
	return &ListDatasetsUseCase{
		services: services,
		repo:     repo,
		sam:      sam,
		logger:   logger,
	}
}

type fanoutResult struct {
	system dataset.StorageSystem
	info   map[string]dataset.StorageSystemInformation
	err    error
}

// Execute queries all storage systems concurrently for the caller's holdings,
// then loads and enriches the matching catalog records. Any system failure
// aborts the whole listing.
func (uc *ListDatasetsUseCase) Execute(ctx context.Context, token string) (*dto.DatasetListResponse, error) {
	systems := uc.services.Systems()
	results := make([]fanoutResult, len(systems))

	var wg sync.WaitGroup
	for i, system := range systems {
		svc := uc.services[system]
		// Pre-filled so a panicked fetch surfaces as a failure, not an
		// empty result.
		results[i] = fanoutResult{system: system, err: errors.NewInternalError("storage system enumeration did not complete")}
		wg.Add(1)
		goroutine.SafeGo(uc.logger, "list-datasets."+system.Tag(), func() {
			defer wg.Done()
			info, err := svc.GetDatasets(ctx, token)
			results[i] = fanoutResult{system: system, info: info, err: err}
		})
	}
	wg.Wait()

	holdings := make(map[dataset.StorageSystem]map[string]dataset.StorageSystemInformation, len(systems))
	for _, r := range results {
		if r.err != nil {
			uc.logger.Errorw("storage system enumeration failed",
				"storage_system", r.system.Name(),
				"error", r.err,
			)
			return nil, r.err
		}
		holdings[r.system] = r.info
	}

	datasets, err := uc.visibleDatasets(ctx, token, holdings)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]any, 0, len(datasets))
	for _, ds := range datasets {
		info, ok := holdings[ds.StorageSystem()][ds.StorageSourceID()]
		if !ok {
			// Admins can browse records they hold no role on; those fall
			// back to a read-only default without a phs identifier.
			info = dataset.AdminDefaultInformation()
		}
		if info.AccessLevel == dataset.AccessLevelNoAccess {
			continue
		}
		doc, err := enrichMetadata(ds, info)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}

	return &dto.DatasetListResponse{Result: result}, nil
}

func (uc *ListDatasetsUseCase) visibleDatasets(
	ctx context.Context,
	token string,
	holdings map[dataset.StorageSystem]map[string]dataset.StorageSystemInformation,
) ([]*dataset.Dataset, error) {
	readAll, err := uc.sam.HasGlobalAction(ctx, token, dataset.SamActionReadAnyMetadata)
	if err != nil {
		return nil, err
	}
	if readAll {
		return uc.repo.ListAll(ctx)
	}

	criteria := make(map[dataset.StorageSystem][]string, len(holdings))
	for system, info := range holdings {
		ids := make([]string, 0, len(info))
		for sourceID := range info {
			ids = append(ids, sourceID)
		}
		criteria[system] = ids
	}
	return uc.repo.Find(ctx, criteria)
}

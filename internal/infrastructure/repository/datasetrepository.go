package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog/internal/domain/dataset"
	"catalog/internal/infrastructure/persistence/mappers"
	"catalog/internal/infrastructure/persistence/models"
	"catalog/internal/shared/logger"
)

// DatasetRepositoryImpl implements the dataset.Repository interface.
type DatasetRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DatasetMapper
	logger logger.Interface
}

// NewDatasetRepository creates a new dataset repository instance.
func NewDatasetRepository(db *gorm.DB, logger logger.Interface) dataset.Repository {
	return &DatasetRepositoryImpl{
		db:     db,
		mapper: mappers.NewDatasetMapper(),
		logger: logger,
	}
}

// Retrieve returns the record with the given ID, or nil if none exists.
func (r *DatasetRepositoryImpl) Retrieve(ctx context.Context, id uuid.UUID) (*dataset.Dataset, error) {
	var model models.DatasetModel

	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to retrieve dataset by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve dataset: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map dataset model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map dataset: %w", err)
	}

	return entity, nil
}

// Upsert inserts a new record or replaces the metadata of the record already
// holding the same (storage_system, storage_source_id) pair. The conflict
// resolution happens inside the database so concurrent upserts for the same
// pair serialize and exactly one row survives.
func (r *DatasetRepositoryImpl) Upsert(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	model, err := r.mapper.ToModel(ds)
	if err != nil {
		r.logger.Errorw("failed to map dataset entity to model", "error", err)
		return nil, fmt.Errorf("failed to map dataset entity: %w", err)
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_system"}, {Name: "storage_source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"metadata"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert dataset",
			"storage_system", model.StorageSystem,
			"storage_source_id", model.StorageSourceID,
			"error", err)
		return nil, fmt.Errorf("failed to upsert dataset: %w", err)
	}

	// Re-read by the unique pair: on the conflict path the generated ID and
	// original creation time belong to the surviving row, not the insert
	// attempt.
	var stored models.DatasetModel
	err = r.db.WithContext(ctx).
		First(&stored, "storage_system = ? AND storage_source_id = ?", model.StorageSystem, model.StorageSourceID).Error
	if err != nil {
		r.logger.Errorw("failed to read back upserted dataset", "error", err)
		return nil, fmt.Errorf("failed to read back upserted dataset: %w", err)
	}

	entity, err := r.mapper.ToEntity(&stored)
	if err != nil {
		r.logger.Errorw("failed to map dataset model to entity", "id", stored.ID, "error", err)
		return nil, fmt.Errorf("failed to map dataset: %w", err)
	}

	r.logger.Infow("dataset upserted",
		"id", stored.ID,
		"storage_system", stored.StorageSystem,
		"storage_source_id", stored.StorageSourceID)
	return entity, nil
}

// Update replaces the source and metadata fields of an existing record.
func (r *DatasetRepositoryImpl) Update(ctx context.Context, ds *dataset.Dataset) error {
	model, err := r.mapper.ToModel(ds)
	if err != nil {
		r.logger.Errorw("failed to map dataset entity to model", "error", err)
		return fmt.Errorf("failed to map dataset entity: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.DatasetModel
		if err := tx.First(&existing, "id = ?", model.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return dataset.ErrDatasetNotFound
			}
			return err
		}

		return tx.Model(&models.DatasetModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]any{
				"storage_system":    model.StorageSystem,
				"storage_source_id": model.StorageSourceID,
				"metadata":          model.Metadata,
			}).Error
	})
	if err != nil {
		if err == dataset.ErrDatasetNotFound {
			return err
		}
		r.logger.Errorw("failed to update dataset", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update dataset: %w", err)
	}

	r.logger.Infow("dataset updated", "id", model.ID)
	return nil
}

// Delete removes a record by ID and reports whether a row was removed.
func (r *DatasetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.DatasetModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete dataset", "id", id, "error", result.Error)
		return false, fmt.Errorf("failed to delete dataset: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.logger.Infow("dataset deleted", "id", id)
	return true, nil
}

// Find returns every record whose (storage_system, storage_source_id) pair
// appears in the given map. If every set is empty no query is issued.
func (r *DatasetRepositoryImpl) Find(ctx context.Context, sourceIDs map[dataset.StorageSystem][]string) ([]*dataset.Dataset, error) {
	var cond *gorm.DB
	for system, ids := range sourceIDs {
		if len(ids) == 0 {
			continue
		}
		if cond == nil {
			cond = r.db.Where("storage_system = ? AND storage_source_id IN ?", system.Tag(), ids)
		} else {
			cond = cond.Or("storage_system = ? AND storage_source_id IN ?", system.Tag(), ids)
		}
	}
	if cond == nil {
		return []*dataset.Dataset{}, nil
	}

	var modelList []*models.DatasetModel
	if err := r.db.WithContext(ctx).Where(cond).Order("created_at").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find datasets by source IDs", "error", err)
		return nil, fmt.Errorf("failed to find datasets: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map dataset models to entities", "error", err)
		return nil, fmt.Errorf("failed to map datasets: %w", err)
	}

	return entities, nil
}

// ListSourceIDs returns the storage source IDs of every record owned by the
// given storage system.
func (r *DatasetRepositoryImpl) ListSourceIDs(ctx context.Context, system dataset.StorageSystem) ([]string, error) {
	var sourceIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.DatasetModel{}).
		Where("storage_system = ?", system.Tag()).
		Pluck("storage_source_id", &sourceIDs).Error
	if err != nil {
		r.logger.Errorw("failed to list source IDs", "storage_system", system.Tag(), "error", err)
		return nil, fmt.Errorf("failed to list source IDs: %w", err)
	}
	return sourceIDs, nil
}

// ListAll returns every stored record.
func (r *DatasetRepositoryImpl) ListAll(ctx context.Context) ([]*dataset.Dataset, error) {
	var modelList []*models.DatasetModel
	if err := r.db.WithContext(ctx).Order("created_at").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list datasets", "error", err)
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map dataset models to entities", "error", err)
		return nil, fmt.Errorf("failed to map datasets: %w", err)
	}

	return entities, nil
}

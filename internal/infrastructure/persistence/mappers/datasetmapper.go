package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"catalog/internal/domain/dataset"
	"catalog/internal/infrastructure/persistence/models"
	"catalog/internal/shared/mapper"
)

// DatasetMapper handles the conversion between domain entities and persistence models.
type DatasetMapper interface {
	// ToEntity converts a persistence model to a domain entity.
	ToEntity(model *models.DatasetModel) (*dataset.Dataset, error)

	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *dataset.Dataset) (*models.DatasetModel, error)

	// ToEntities converts multiple persistence models to domain entities.
	ToEntities(models []*models.DatasetModel) ([]*dataset.Dataset, error)
}

// DatasetMapperImpl is the concrete implementation of DatasetMapper.
type DatasetMapperImpl struct{}

// NewDatasetMapper creates a new dataset mapper.
func NewDatasetMapper() DatasetMapper {
	return &DatasetMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *DatasetMapperImpl) ToEntity(model *models.DatasetModel) (*dataset.Dataset, error) {
	if model == nil {
		return nil, nil
	}

	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset ID %q: %w", model.ID, err)
	}

	system, err := dataset.ParseStorageSystem(model.StorageSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to parse storage system tag: %w", err)
	}

	entity, err := dataset.ReconstructDataset(
		id,
		system,
		model.StorageSourceID,
		json.RawMessage(model.Metadata),
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct dataset entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *DatasetMapperImpl) ToModel(entity *dataset.Dataset) (*models.DatasetModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.DatasetModel{
		StorageSystem:   entity.StorageSystem().Tag(),
		StorageSourceID: entity.StorageSourceID(),
		Metadata:        datatypes.JSON(entity.Metadata()),
		CreatedAt:       entity.CreationTime(),
	}
	if entity.ID() != uuid.Nil {
		model.ID = entity.ID().String()
	}

	return model, nil
}

// ToEntities converts multiple persistence models to domain entities.
func (m *DatasetMapperImpl) ToEntities(modelList []*models.DatasetModel) ([]*dataset.Dataset, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.DatasetModel) string { return model.ID })
}

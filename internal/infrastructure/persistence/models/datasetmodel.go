package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catalog/internal/shared/constants"
)

// DatasetModel represents the database persistence model for catalog records.
// One row per catalogued object, keyed by a generated UUID, with a uniqueness
// constraint on the (storage_system, storage_source_id) pair and a JSON-typed
// metadata column.
type DatasetModel struct {
	ID              string         `gorm:"primarykey;size:36"`
	StorageSystem   string         `gorm:"not null;size:8;uniqueIndex:idx_dataset_storage_source"`
	StorageSourceID string         `gorm:"not null;size:191;uniqueIndex:idx_dataset_storage_source"`
	Metadata        datatypes.JSON `gorm:"not null"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM.
func (DatasetModel) TableName() string {
	return constants.TableDatasets
}

// BeforeCreate hook for GORM.
func (m *DatasetModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

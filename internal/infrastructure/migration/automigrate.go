package migration

import (
	"catalog/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.DatasetModel{},
	}
}

package types

import (
	"github.com/google/uuid"
)

// Ingredient is catalog reference data: the (name, measurement unit) pair is
// unique and rows are only created by the import command, never mutated by
// request handlers.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit;column:name" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit;column:measurement_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredient"
}

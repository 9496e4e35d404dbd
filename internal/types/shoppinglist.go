package types

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingListEntry records a user's intent to cook a recipe: the recipe's
// ingredient rows are included in the user's aggregated shopping list. At
// most one entry exists per (user, recipe).
type ShoppingListEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_shopping_list_user_recipe;column:user_id" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"not null;uniqueIndex:idx_shopping_list_user_recipe;column:recipe_id" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShoppingListEntry) TableName() string {
	return "shopping_list"
}

// AggregatedLine is one merged row of a shopping-list export. It is derived
// per request and never persisted.
type AggregatedLine struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

package types

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;column:user_id" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;column:recipe_id" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorite"
}

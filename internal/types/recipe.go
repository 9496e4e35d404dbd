package types

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID           `gorm:"index;not null;column:author_id" json:"author_id"`
	Author      *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Name        string              `gorm:"size:200;not null;column:name" json:"name"`
	ImagePath   string              `gorm:"column:image_path" json:"image,omitempty"`
	Text        string              `gorm:"type:text;not null;column:text" json:"text"`
	CookingTime int                 `gorm:"not null;column:cooking_time" json:"cooking_time"`
	Tags        []*Tag              `gorm:"many2many:recipe_tag" json:"tags,omitempty"`
	Ingredients []*RecipeIngredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"ingredients,omitempty"`
	CreatedAt   time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipe"
}

type RecipeIngredient struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"not null;uniqueIndex:idx_recipe_ingredient;column:recipe_id" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"not null;uniqueIndex:idx_recipe_ingredient;column:ingredient_id" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	Amount       int         `gorm:"not null;column:amount" json:"amount"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredient"
}

package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

// ShoppingListRepo is the membership half of the shopping-list store: which
// recipes a user intends to cook. GetOrCreate is idempotent at this layer;
// the HTTP endpoint decides whether a duplicate is a user-visible conflict.
type ShoppingListRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingListEntry, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.ShoppingListEntry, bool, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error
}

var ErrEntryNotFound = errors.New("shopping list entry not found")

type shoppingListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShoppingListRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingListRepo {
	return &shoppingListRepo{db: db, log: baseLog.With("repo", "ShoppingListRepo")}
}

func (r *shoppingListRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *shoppingListRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingListEntry, error) {
	var results []*types.ShoppingListEntry
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *shoppingListRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.ShoppingListEntry, bool, error) {
	conn := r.conn(tx).WithContext(ctx)

	var existing types.ShoppingListEntry
	err := conn.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	entry := &types.ShoppingListEntry{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := conn.Create(entry).Error; err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (r *shoppingListRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.ShoppingListEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

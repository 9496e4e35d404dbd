package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type FavoriteRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favorite, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.Favorite, bool, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return &favoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

func (r *favoriteRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *favoriteRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favorite, error) {
	var results []*types.Favorite
	if err := r.conn(tx).WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *favoriteRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.Favorite, bool, error) {
	conn := r.conn(tx).WithContext(ctx)

	var existing types.Favorite
	err := conn.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	fav := &types.Favorite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := conn.Create(fav).Error; err != nil {
		return nil, false, err
	}
	return fav, true, nil
}

func (r *favoriteRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

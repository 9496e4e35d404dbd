package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) (*types.Recipe, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*types.Favorite, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
	recipeRepo   repos.RecipeRepo
}

func NewFavoriteService(db *gorm.DB, log *logger.Logger, favoriteRepo repos.FavoriteRepo, recipeRepo repos.RecipeRepo) FavoriteService {
	return &favoriteService{
		db:           db,
		log:          log.With("service", "FavoriteService"),
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (fs *favoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) (*types.Recipe, error) {
	recipe, err := fs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	_, created, err := fs.favoriteRepo.GetOrCreate(ctx, nil, userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("%w: recipe already in favorites", ErrAlreadyExists)
	}
	return recipe, nil
}

func (fs *favoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := fs.favoriteRepo.Delete(ctx, nil, userID, recipeID); err != nil {
		if errors.Is(err, repos.ErrEntryNotFound) {
			return fmt.Errorf("%w: recipe not in favorites", ErrNotFound)
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (fs *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]*types.Favorite, error) {
	favorites, err := fs.favoriteRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

// IngredientFilter mirrors the catalog list query parameters: prefix and
// substring matches on the ingredient name, both case-insensitive.
type IngredientFilter struct {
	NameStarts   string
	NameContains string
}

type IngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) (int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Ingredient, error)
	List(ctx context.Context, tx *gorm.DB, filter IngredientFilter) ([]*types.Ingredient, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (r *ingredientRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts catalog rows, skipping any whose (name, unit) pair already
// exists, and returns the number of rows actually inserted. Re-running the
// import command is a no-op.
func (r *ingredientRepo) Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	res := r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "measurement_unit"}},
			DoNothing: true,
		}).
		Create(&ingredients)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *ingredientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Ingredient, error) {
	var results []*types.Ingredient
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ingredientRepo) List(ctx context.Context, tx *gorm.DB, filter IngredientFilter) ([]*types.Ingredient, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.Ingredient{})
	if filter.NameStarts != "" {
		q = q.Where("lower(name) LIKE lower(?)", filter.NameStarts+"%")
	}
	if filter.NameContains != "" {
		q = q.Where("lower(name) LIKE lower(?)", "%"+filter.NameContains+"%")
	}
	var results []*types.Ingredient
	if err := q.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type IngredientService interface {
	List(ctx context.Context, filter repos.IngredientFilter) ([]*types.Ingredient, error)
	ImportCSV(ctx context.Context, path string) (int, error)
}

type ingredientService struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo repos.IngredientRepo
}

func NewIngredientService(db *gorm.DB, log *logger.Logger, ingredientRepo repos.IngredientRepo) IngredientService {
	return &ingredientService{
		db:             db,
		log:            log.With("service", "IngredientService"),
		ingredientRepo: ingredientRepo,
	}
}

func (is *ingredientService) List(ctx context.Context, filter repos.IngredientFilter) ([]*types.Ingredient, error) {
	ingredients, err := is.ingredientRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// ImportCSV loads catalog rows from a two-column CSV file (name,
// measurement unit) and returns the number of imported ingredients.
func (is *ingredientService) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read csv row: %w", err)
		}

		ingredient := &types.Ingredient{
			ID:              uuid.New(),
			Name:            record[0],
			MeasurementUnit: record[1],
		}
		inserted, err := is.ingredientRepo.Create(ctx, nil, []*types.Ingredient{ingredient})
		if err != nil {
			return count, fmt.Errorf("import ingredient %q: %w", record[0], err)
		}
		if inserted == 0 {
			is.log.Debug("Ingredient already in catalog, skipped", "name", record[0], "unit", record[1])
			continue
		}
		is.log.Info("Imported ingredient", "name", record[0], "unit", record[1])
		count += int(inserted)
	}
	return count, nil
}

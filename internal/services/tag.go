package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type TagService interface {
	List(ctx context.Context) ([]*types.Tag, error)
}

type tagService struct {
	db      *gorm.DB
	log     *logger.Logger
	tagRepo repos.TagRepo
}

func NewTagService(db *gorm.DB, log *logger.Logger, tagRepo repos.TagRepo) TagService {
	return &tagService{
		db:      db,
		log:     log.With("service", "TagService"),
		tagRepo: tagRepo,
	}
}

func (ts *tagService) List(ctx context.Context) ([]*types.Tag, error) {
	tags, err := ts.tagRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

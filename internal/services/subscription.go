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

// SubscriptionEntry is one author the caller follows, with that author's
// recipes inlined.
type SubscriptionEntry struct {
	Author  *types.User     `json:"author"`
	Recipes []*types.Recipe `json:"recipes"`
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error
	Unsubscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error
	List(ctx context.Context, subscriberID uuid.UUID) ([]*SubscriptionEntry, error)
}

type subscriptionService struct {
	db               *gorm.DB
	log              *logger.Logger
	subscriptionRepo repos.SubscriptionRepo
	userRepo         repos.UserRepo
	recipeRepo       repos.RecipeRepo
}

func NewSubscriptionService(
	db *gorm.DB,
	log *logger.Logger,
	subscriptionRepo repos.SubscriptionRepo,
	userRepo repos.UserRepo,
	recipeRepo repos.RecipeRepo,
) SubscriptionService {
	return &subscriptionService{
		db:               db,
		log:              log.With("service", "SubscriptionService"),
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
	}
}

func (ss *subscriptionService) Subscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error {
	if subscriberID == authorID {
		return fmt.Errorf("%w: cannot subscribe to yourself", ErrInvalidInput)
	}

	authors, err := ss.userRepo.GetByIDs(ctx, nil, []uuid.UUID{authorID})
	if err != nil {
		return fmt.Errorf("load author: %w", err)
	}
	if len(authors) == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, authorID)
	}

	_, created, err := ss.subscriptionRepo.GetOrCreate(ctx, nil, subscriberID, authorID)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	if !created {
		return fmt.Errorf("%w: already subscribed", ErrAlreadyExists)
	}
	return nil
}

func (ss *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID uuid.UUID) error {
	if err := ss.subscriptionRepo.Delete(ctx, nil, subscriberID, authorID); err != nil {
		if errors.Is(err, repos.ErrEntryNotFound) {
			return fmt.Errorf("%w: not subscribed", ErrNotFound)
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

func (ss *subscriptionService) List(ctx context.Context, subscriberID uuid.UUID) ([]*SubscriptionEntry, error) {
	subs, err := ss.subscriptionRepo.GetBySubscriberID(ctx, nil, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	entries := make([]*SubscriptionEntry, 0, len(subs))
	for _, sub := range subs {
		recipes, err := ss.recipeRepo.GetByAuthorIDs(ctx, nil, []uuid.UUID{sub.AuthorID})
		if err != nil {
			return nil, fmt.Errorf("load recipes for author %s: %w", sub.AuthorID, err)
		}
		entries = append(entries, &SubscriptionEntry{
			Author:  sub.Author,
			Recipes: recipes,
		})
	}
	return entries, nil
}

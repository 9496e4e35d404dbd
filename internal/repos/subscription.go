package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type SubscriptionRepo interface {
	GetBySubscriberID(ctx context.Context, tx *gorm.DB, subscriberID uuid.UUID) ([]*types.Subscription, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, subscriberID, authorID uuid.UUID) (*types.Subscription, bool, error)
	Delete(ctx context.Context, tx *gorm.DB, subscriberID, authorID uuid.UUID) error
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (r *subscriptionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *subscriptionRepo) GetBySubscriberID(ctx context.Context, tx *gorm.DB, subscriberID uuid.UUID) ([]*types.Subscription, error) {
	var results []*types.Subscription
	if err := r.conn(tx).WithContext(ctx).
		Preload("Author").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subscriptionRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, subscriberID, authorID uuid.UUID) (*types.Subscription, bool, error) {
	conn := r.conn(tx).WithContext(ctx)

	var existing types.Subscription
	err := conn.Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	sub := &types.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		AuthorID:     authorID,
	}
	if err := conn.Create(sub).Error; err != nil {
		return nil, false, err
	}
	return sub, true, nil
}

func (r *subscriptionRepo) Delete(ctx context.Context, tx *gorm.DB, subscriberID, authorID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&types.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

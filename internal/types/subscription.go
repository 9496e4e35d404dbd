package types

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"not null;uniqueIndex:idx_subscription_pair;column:subscriber_id" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"not null;uniqueIndex:idx_subscription_pair;column:author_id" json:"author_id"`
	Author       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

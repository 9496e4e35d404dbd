package types

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:50;uniqueIndex;not null;column:name" json:"name"`
	Color string    `gorm:"size:7;not null;column:color" json:"color"`
	Slug  string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
}

func (Tag) TableName() string {
	return "tag"
}

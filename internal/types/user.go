package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"size:254;uniqueIndex;not null;column:email" json:"email"`
	Username   string    `gorm:"size:150;uniqueIndex;not null;column:username" json:"username"`
	Password   string    `gorm:"size:150;not null;column:password" json:"-"`
	FirstName  string    `gorm:"size:150;not null;column:first_name" json:"first_name"`
	LastName   string    `gorm:"size:150;not null;column:last_name" json:"last_name"`
	AvatarPath string    `gorm:"column:avatar_path" json:"avatar,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

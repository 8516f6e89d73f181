package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string     `gorm:"type:varchar(255);not null"`
	Email             *string    `gorm:"type:varchar(255);uniqueIndex:uq_user_email"` // nullable untuk role tertentu
	Password          string     `gorm:"type:varchar(255);not null"`
	Role              string     `gorm:"type:varchar(20);not null;default:'USER'"`
	NeedPasswordReset bool       `gorm:"not null;default:false"`
	ResetRequestedAt  *time.Time `gorm:"type:timestamptz"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

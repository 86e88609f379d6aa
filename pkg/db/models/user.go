package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string         `gorm:"not null" json:"display_name"`
	Role        enums.UserRole `gorm:"type:varchar(16);not null;default:'buyer'" json:"role"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	City        string         `json:"city,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (User) TableName() string { return "users" }

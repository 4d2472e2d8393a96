package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Username      string         `gorm:"uniqueIndex;not null" json:"username"`
	FullName      string         `gorm:"not null" json:"full_name"`
	Password      string         `gorm:"not null" json:"-"`
	AvatarURL     string         `gorm:"type:varchar(500)" json:"avatar_url"`
	CoverImageURL string         `gorm:"type:varchar(500)" json:"cover_image_url"`
	RefreshToken  string         `gorm:"type:varchar(500)" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

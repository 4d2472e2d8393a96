package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel references its resource by id plus a type tag, so the same table
// serves video, comment and tweet likes.
type LikeModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	ResourceID   string         `gorm:"type:uuid;not null;index:idx_likes_resource" json:"resource_id"`
	ResourceType string         `gorm:"type:varchar(20);not null;index:idx_likes_resource" json:"resource_type"`
	LikedBy      string         `gorm:"type:uuid;not null;index" json:"liked_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

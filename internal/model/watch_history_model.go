package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchHistoryModel holds one row per (user, video). Re-watching refreshes
// WatchedAt, so ordering by it descending yields most-recent-first history.
type WatchHistoryModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	VideoID   string    `gorm:"type:uuid;not null;index" json:"video_id"`
	WatchedAt time.Time `gorm:"not null;index" json:"watched_at"`
}

func (WatchHistoryModel) TableName() string {
	return "watch_history"
}

func (w *WatchHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

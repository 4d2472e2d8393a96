package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{
		Email:    "test@example.com",
		Username: "testuser",
		FullName: "Test User",
		Password: "password",
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &UserModel{
		ID:       existingID,
		Email:    "test@example.com",
		Username: "testuser",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestVideoModel_BeforeCreate(t *testing.T) {
	video := &VideoModel{
		OwnerID: "owner-123",
		Title:   "Test Video",
		FileURL: "https://example.com/video.mp4",
	}

	err := video.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, video.ID)
}

func TestSubscriptionModel_BeforeCreate(t *testing.T) {
	sub := &SubscriptionModel{
		SubscriberID: "user-1",
		ChannelID:    "user-2",
	}

	err := sub.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
}

func TestLikeModel_BeforeCreate(t *testing.T) {
	like := &LikeModel{
		ResourceID:   "video-1",
		ResourceType: "video",
		LikedBy:      "user-1",
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestWatchHistoryModel_BeforeCreate(t *testing.T) {
	entry := &WatchHistoryModel{
		UserID:  "user-1",
		VideoID: "video-1",
	}

	err := entry.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "videos", VideoModel{}.TableName())
	assert.Equal(t, "subscriptions", SubscriptionModel{}.TableName())
	assert.Equal(t, "likes", LikeModel{}.TableName())
	assert.Equal(t, "watch_history", WatchHistoryModel{}.TableName())
}

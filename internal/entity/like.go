package entity

import "time"

// LikeResourceType discriminates what kind of resource a like points at.
type LikeResourceType string

const (
	LikeResourceVideo   LikeResourceType = "video"
	LikeResourceComment LikeResourceType = "comment"
	LikeResourceTweet   LikeResourceType = "tweet"
)

type Like struct {
	ID           string           `json:"id"`
	ResourceID   string           `json:"resource_id"`
	ResourceType LikeResourceType `json:"resource_type"`
	LikedBy      string           `json:"liked_by"`
	CreatedAt    time.Time        `json:"created_at"`
}

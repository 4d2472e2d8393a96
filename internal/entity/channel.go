package entity

import "time"

// ChannelProfile is the derived public view of a user as a channel.
// Credentials and watch history are never part of this projection.
type ChannelProfile struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"full_name"`
	Email                     string `json:"email"`
	AvatarURL                 string `json:"avatar_url"`
	CoverImageURL             string `json:"cover_image_url,omitempty"`
	SubscribersCount          int64  `json:"subscribers_count"`
	ChannelsSubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"is_subscribed"`
}

// WatchEntry is one position in a user's watch history, most recent first.
type WatchEntry struct {
	VideoID   string    `json:"video_id"`
	WatchedAt time.Time `json:"watched_at"`
}

// VideoOwner is the denormalized owner projection embedded in enriched videos.
type VideoOwner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// WatchedVideo is a watch-history entry enriched with its owner. Owner is nil
// when the owning account no longer resolves.
type WatchedVideo struct {
	Video
	Owner     *VideoOwner `json:"owner"`
	WatchedAt time.Time   `json:"watched_at"`
}

type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
	TotalViews       int64 `json:"total_views"`
}

package persistent

import (
	"viewtube/internal/entity"
	"viewtube/internal/model"

	"gorm.io/gorm"
)

// ChannelRepository serves the derived read models: channel profile, watch
// history enrichment, channel statistics and paged channel listings. It is a
// pure read path; nothing here mutates state.
type ChannelRepository interface {
	GetProfileByUsername(viewerID, username string) (*entity.ChannelProfile, error)
	GetWatchEntries(userID string) ([]entity.WatchEntry, error)
	GetVideosByIDs(ids []string) ([]*entity.Video, error)
	GetOwnersByIDs(ids []string) ([]*entity.VideoOwner, error)
	GetVideosByOwner(ownerID string, page, limit int) ([]*entity.Video, error)
	CountVideosByOwner(ownerID string) (int64, error)
	CountSubscribers(channelID string) (int64, error)
	CountLikesForOwnedVideos(ownerID string) (int64, error)
	SumViewsByOwner(ownerID string) (int64, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

type channelProfileRow struct {
	ID                        string `gorm:"column:id"`
	Username                  string `gorm:"column:username"`
	FullName                  string `gorm:"column:full_name"`
	Email                     string `gorm:"column:email"`
	AvatarURL                 string `gorm:"column:avatar_url"`
	CoverImageURL             string `gorm:"column:cover_image_url"`
	SubscribersCount          int64  `gorm:"column:subscribers_count"`
	ChannelsSubscribedToCount int64  `gorm:"column:channels_subscribed_to_count"`
	IsSubscribed              bool   `gorm:"column:is_subscribed"`
}

// GetProfileByUsername resolves the channel profile in a single statement so
// the counts and the viewer flag all see one snapshot. viewerID may be empty
// (anonymous); an empty id never matches a subscriber, so is_subscribed stays
// false. The caller is responsible for lowercasing username.
func (r *channelRepository) GetProfileByUsername(viewerID, username string) (*entity.ChannelProfile, error) {
	var row channelProfileRow
	result := r.db.Raw(`
		SELECT u.id, u.username, u.full_name, u.email, u.avatar_url, u.cover_image_url,
		       (SELECT COUNT(*) FROM subscriptions s
		         WHERE s.channel_id = u.id AND s.deleted_at IS NULL) AS subscribers_count,
		       (SELECT COUNT(*) FROM subscriptions s
		         WHERE s.subscriber_id = u.id AND s.deleted_at IS NULL) AS channels_subscribed_to_count,
		       EXISTS (SELECT 1 FROM subscriptions s
		         WHERE s.channel_id = u.id AND s.subscriber_id::text = ? AND s.deleted_at IS NULL) AS is_subscribed
		  FROM users u
		 WHERE LOWER(u.username) = ? AND u.deleted_at IS NULL`,
		viewerID, username,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &entity.ChannelProfile{
		ID:                        row.ID,
		Username:                  row.Username,
		FullName:                  row.FullName,
		Email:                     row.Email,
		AvatarURL:                 row.AvatarURL,
		CoverImageURL:             row.CoverImageURL,
		SubscribersCount:          row.SubscribersCount,
		ChannelsSubscribedToCount: row.ChannelsSubscribedToCount,
		IsSubscribed:              row.IsSubscribed,
	}, nil
}

func (r *channelRepository) GetWatchEntries(userID string) ([]entity.WatchEntry, error) {
	var entryModels []model.WatchHistoryModel
	if err := r.db.Where("user_id = ?", userID).Order("watched_at DESC").Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]entity.WatchEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entity.WatchEntry{
			VideoID:   entryModels[i].VideoID,
			WatchedAt: entryModels[i].WatchedAt,
		}
	}
	return entries, nil
}

func (r *channelRepository) GetVideosByIDs(ids []string) ([]*entity.Video, error) {
	if len(ids) == 0 {
		return []*entity.Video{}, nil
	}

	var videoModels []model.VideoModel
	if err := r.db.Where("id IN ?", ids).Find(&videoModels).Error; err != nil {
		return nil, err
	}
	return ToVideoEntities(videoModels), nil
}

func (r *channelRepository) GetOwnersByIDs(ids []string) ([]*entity.VideoOwner, error) {
	if len(ids) == 0 {
		return []*entity.VideoOwner{}, nil
	}

	var userModels []model.UserModel
	if err := r.db.Select("id", "username", "full_name", "avatar_url").Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, err
	}

	owners := make([]*entity.VideoOwner, len(userModels))
	for i := range userModels {
		owners[i] = &entity.VideoOwner{
			ID:        userModels[i].ID,
			Username:  userModels[i].Username,
			FullName:  userModels[i].FullName,
			AvatarURL: userModels[i].AvatarURL,
		}
	}
	return owners, nil
}

func (r *channelRepository) GetVideosByOwner(ownerID string, page, limit int) ([]*entity.Video, error) {
	var videoModels []model.VideoModel
	err := r.db.Where("owner_id = ? AND is_published = ?", ownerID, true).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&videoModels).Error
	if err != nil {
		return nil, err
	}
	return ToVideoEntities(videoModels), nil
}

func (r *channelRepository) CountVideosByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.VideoModel{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *channelRepository) CountSubscribers(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountLikesForOwnedVideos first materializes the owned-video id set, then
// counts likes by membership. Likes reference videos only by id plus type tag,
// so there is no direct join. A video added or removed between the two reads
// can skew one sample; acceptable for a stats dashboard.
func (r *channelRepository) CountLikesForOwnedVideos(ownerID string) (int64, error) {
	var videoIDs []string
	if err := r.db.Model(&model.VideoModel{}).Where("owner_id = ?", ownerID).Pluck("id", &videoIDs).Error; err != nil {
		return 0, err
	}
	if len(videoIDs) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("resource_type = ? AND resource_id IN ?", string(entity.LikeResourceVideo), videoIDs).
		Count(&count).Error
	return count, err
}

func (r *channelRepository) SumViewsByOwner(ownerID string) (int64, error) {
	var totalViews int64
	err := r.db.Model(&model.VideoModel{}).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&totalViews).Error
	if err != nil {
		return 0, err
	}
	return totalViews, nil
}

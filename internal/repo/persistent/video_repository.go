package persistent

import (
	"time"

	"viewtube/internal/entity"
	"viewtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	Update(video *entity.Video) error
	Delete(id string) error
	IncrementViews(id string) error
	CreateLike(userID, resourceID string, resourceType entity.LikeResourceType) error
	DeleteLike(userID, resourceID string, resourceType entity.LikeResourceType) error
	IsLiked(userID, resourceID string, resourceType entity.LikeResourceType) (bool, error)
	GetLikeCount(resourceID string, resourceType entity.LikeResourceType) (int64, error)
	UpsertWatchEntry(userID, videoID string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if videoModel.ID == "" {
		videoModel.ID = uuid.New().String()
	}
	if err := r.db.Create(videoModel).Error; err != nil {
		return err
	}
	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Where("id = ?", id).First(&videoModel).Error; err != nil {
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}

func (r *videoRepository) Update(video *entity.Video) error {
	videoModel := ToVideoModel(video)
	return r.db.Save(videoModel).Error
}

func (r *videoRepository) Delete(id string) error {
	return r.db.Delete(&model.VideoModel{}, "id = ?", id).Error
}

func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(&model.VideoModel{}).Where("id = ?", id).UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

func (r *videoRepository) CreateLike(userID, resourceID string, resourceType entity.LikeResourceType) error {
	var existing model.LikeModel
	err := r.db.Unscoped().Where("liked_by = ? AND resource_id = ? AND resource_type = ?", userID, resourceID, string(resourceType)).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			if err := r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error; err != nil {
				return err
			}
			return nil
		}
		return nil
	}

	likeModel := &model.LikeModel{
		ID:           uuid.New().String(),
		ResourceID:   resourceID,
		ResourceType: string(resourceType),
		LikedBy:      userID,
	}
	return r.db.Create(likeModel).Error
}

func (r *videoRepository) DeleteLike(userID, resourceID string, resourceType entity.LikeResourceType) error {
	return r.db.Unscoped().Where("liked_by = ? AND resource_id = ? AND resource_type = ?", userID, resourceID, string(resourceType)).Delete(&model.LikeModel{}).Error
}

func (r *videoRepository) IsLiked(userID, resourceID string, resourceType entity.LikeResourceType) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("liked_by = ? AND resource_id = ? AND resource_type = ?", userID, resourceID, string(resourceType)).Count(&count).Error
	return count > 0, err
}

func (r *videoRepository) GetLikeCount(resourceID string, resourceType entity.LikeResourceType) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("resource_id = ? AND resource_type = ?", resourceID, string(resourceType)).Count(&count).Error
	return count, err
}

// UpsertWatchEntry appends a video to the user's watch history. Re-watching
// refreshes watched_at, moving the entry to the head of the history.
func (r *videoRepository) UpsertWatchEntry(userID, videoID string) error {
	var existing model.WatchHistoryModel
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&existing).Error
	if err == nil {
		return r.db.Model(&existing).Update("watched_at", time.Now()).Error
	}

	entryModel := &model.WatchHistoryModel{
		ID:        uuid.New().String(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	return r.db.Create(entryModel).Error
}

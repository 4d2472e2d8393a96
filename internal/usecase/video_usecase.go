package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"viewtube/internal/entity"
	"viewtube/internal/repo/persistent"
	"viewtube/pkg/logger"
	"viewtube/pkg/queue"
	"viewtube/pkg/s3"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type VideoUseCase interface {
	UploadVideo(userID, title, description string, duration int, videoFile, thumbnailFile *multipart.FileHeader) (*entity.Video, error)
	GetVideo(videoID, userID string) (*entity.Video, int64, bool, error)
	UpdateVideo(videoID, userID string, title, description *string) (*entity.Video, error)
	DeleteVideo(videoID, userID string) error
	TogglePublish(videoID, userID string) (*entity.Video, error)
	ToggleLike(userID, videoID string) (bool, error)
	GetLikeCount(videoID string) (int64, error)
	RecordView(userID, videoID string) (bool, error)
}

type videoUseCase struct {
	videoRepo   persistent.VideoRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:   videoRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *videoUseCase) UploadVideo(userID, title, description string, duration int, videoFile, thumbnailFile *multipart.FileHeader) (*entity.Video, error) {
	if videoFile == nil {
		return nil, fmt.Errorf("video file is required")
	}

	fileURL, err := uc.uploadAsset(userID, videoFile, "video/mp4")
	if err != nil {
		return nil, err
	}

	var thumbnailURL string
	if thumbnailFile != nil {
		thumbnailURL, err = uc.uploadAsset(userID, thumbnailFile, "image/jpeg")
		if err != nil {
			return nil, err
		}
	}

	video := &entity.Video{
		OwnerID:      userID,
		Title:        title,
		Description:  description,
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
	}

	if err := uc.videoRepo.Create(video); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":     "video_published",
				"user_id":  userID,
				"video_id": video.ID,
				"priority": 5,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish video task: %v", err)
			}
		}()
	}

	return video, nil
}

func (uc *videoUseCase) uploadAsset(userID string, file *multipart.FileHeader, defaultContentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	fileKey := fmt.Sprintf("videos/%s/%s%s", userID, uuid.New().String(), fileExtension(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	url, err := uc.s3Client.UploadFile(fileKey, src, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return url, nil
}

// GetVideo returns the video with its like count and whether userID has liked
// it. Unpublished videos are visible to their owner only.
func (uc *videoUseCase) GetVideo(videoID, userID string) (*entity.Video, int64, bool, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, false, entity.ErrVideoNotFound
		}
		return nil, 0, false, err
	}

	if !video.IsPublished && video.OwnerID != userID {
		return nil, 0, false, entity.ErrVideoNotFound
	}

	likeCount, _ := uc.GetLikeCount(videoID)

	isLiked := false
	if userID != "" {
		isLiked, _ = uc.videoRepo.IsLiked(userID, videoID, entity.LikeResourceVideo)
	}

	return video, likeCount, isLiked, nil
}

func (uc *videoUseCase) UpdateVideo(videoID, userID string, title, description *string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, entity.ErrVideoNotFound
	}
	if video.OwnerID != userID {
		return nil, entity.ErrNotOwner
	}

	if title != nil {
		video.Title = *title
	}
	if description != nil {
		video.Description = *description
	}

	if err := uc.videoRepo.Update(video); err != nil {
		uc.logger.Error("Failed to update video: %v", err)
		return nil, fmt.Errorf("failed to update video")
	}
	return video, nil
}

func (uc *videoUseCase) DeleteVideo(videoID, userID string) error {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return entity.ErrVideoNotFound
	}
	if video.OwnerID != userID {
		return entity.ErrNotOwner
	}

	if err := uc.videoRepo.Delete(videoID); err != nil {
		uc.logger.Error("Failed to delete video: %v", err)
		return fmt.Errorf("failed to delete video")
	}

	// Best-effort removal of the stored assets.
	for _, url := range []string{video.FileURL, video.ThumbnailURL} {
		if url == "" {
			continue
		}
		if key := uc.s3Client.KeyFromURL(url); key != "" {
			if err := uc.s3Client.DeleteFile(key); err != nil {
				uc.logger.Warn("Failed to delete video asset %s: %v", key, err)
			}
		}
	}

	return nil
}

func (uc *videoUseCase) TogglePublish(videoID, userID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, entity.ErrVideoNotFound
	}
	if video.OwnerID != userID {
		return nil, entity.ErrNotOwner
	}

	video.IsPublished = !video.IsPublished
	if err := uc.videoRepo.Update(video); err != nil {
		uc.logger.Error("Failed to toggle publish state: %v", err)
		return nil, fmt.Errorf("failed to update video")
	}
	return video, nil
}

// ToggleLike likes the video when unliked and removes the like otherwise.
// Returns the resulting liked state.
func (uc *videoUseCase) ToggleLike(userID, videoID string) (bool, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return false, entity.ErrVideoNotFound
	}

	isLiked, err := uc.videoRepo.IsLiked(userID, videoID, entity.LikeResourceVideo)
	if err != nil {
		uc.logger.Error("Failed to check like status: %v", err)
		return false, fmt.Errorf("failed to check like status: %w", err)
	}

	ctx := context.Background()
	redisKey := fmt.Sprintf("video:likes:%s", videoID)

	if isLiked {
		if err := uc.videoRepo.DeleteLike(userID, videoID, entity.LikeResourceVideo); err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return false, fmt.Errorf("failed to unlike video: %w", err)
		}
		if uc.redisClient != nil {
			uc.redisClient.Decr(ctx, redisKey)
		}
		return false, nil
	}

	if err := uc.videoRepo.CreateLike(userID, videoID, entity.LikeResourceVideo); err != nil {
		uc.logger.Error("Failed to create like: %v", err)
		return false, fmt.Errorf("failed to like video: %w", err)
	}
	if uc.redisClient != nil {
		uc.redisClient.Incr(ctx, redisKey)
	}

	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":     "like",
				"user_id":  video.OwnerID,
				"liked_by": userID,
				"video_id": videoID,
				"priority": 2,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish like task: %v", err)
			}
		}()
	}

	return true, nil
}

func (uc *videoUseCase) GetLikeCount(videoID string) (int64, error) {
	ctx := context.Background()
	redisKey := fmt.Sprintf("video:likes:%s", videoID)

	if uc.redisClient != nil {
		if count, err := uc.redisClient.Get(ctx, redisKey).Int64(); err == nil {
			return count, nil
		}
	}

	count, err := uc.videoRepo.GetLikeCount(videoID, entity.LikeResourceVideo)
	if err != nil {
		return 0, err
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, redisKey, count, 0)
	}
	return count, nil
}

// RecordView counts one view per user per video (Redis SetNX dedup) and
// appends the video to the viewer's watch history. Returns whether the view
// counter advanced.
func (uc *videoUseCase) RecordView(userID, videoID string) (bool, error) {
	if _, err := uc.videoRepo.GetByID(videoID); err != nil {
		return false, entity.ErrVideoNotFound
	}

	if err := uc.videoRepo.UpsertWatchEntry(userID, videoID); err != nil {
		uc.logger.Error("Failed to record watch history: %v", err)
		return false, fmt.Errorf("failed to track view: %w", err)
	}

	counted := true
	if uc.redisClient != nil {
		ctx := context.Background()
		viewKey := fmt.Sprintf("video_viewed:%s:%s", videoID, userID)
		set, err := uc.redisClient.SetNX(ctx, viewKey, "1", 365*24*time.Hour).Result()
		if err != nil {
			uc.logger.Error("Failed to set view key in Redis: %v", err)
			return false, fmt.Errorf("failed to track view: %w", err)
		}
		counted = set
	}

	if counted {
		if err := uc.videoRepo.IncrementViews(videoID); err != nil {
			uc.logger.Error("Failed to increment views: %v", err)
			return false, fmt.Errorf("failed to increment views: %w", err)
		}
	}

	return counted, nil
}

func fileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0 && filename[i] != '/'; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}

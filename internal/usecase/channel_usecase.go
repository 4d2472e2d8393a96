package usecase

import (
	"errors"
	"fmt"
	"strings"

	"viewtube/internal/entity"
	"viewtube/internal/repo/persistent"
	"viewtube/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChannelUseCase answers the derived read-model queries. Every operation is
// read-only; store failures propagate to the caller without retries.
type ChannelUseCase interface {
	GetChannelProfile(viewerID, username string) (*entity.ChannelProfile, error)
	GetWatchHistory(userID string) ([]*entity.WatchedVideo, error)
	GetChannelStats(channelID string) (*entity.ChannelStats, error)
	GetChannelVideos(channelID string, page, limit int) ([]*entity.Video, error)
}

type channelUseCase struct {
	channelRepo persistent.ChannelRepository
	logger      *logger.Logger
}

func NewChannelUseCase(channelRepo persistent.ChannelRepository, logger *logger.Logger) ChannelUseCase {
	return &channelUseCase{
		channelRepo: channelRepo,
		logger:      logger,
	}
}

// GetChannelProfile resolves the public channel view for username as seen by
// viewerID (empty for anonymous viewers). Username matching is
// case-insensitive; a blank username is rejected before any store call.
func (uc *channelUseCase) GetChannelProfile(viewerID, username string) (*entity.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, entity.ErrInvalidUsername
	}

	profile, err := uc.channelRepo.GetProfileByUsername(viewerID, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrChannelNotFound
		}
		uc.logger.Error("Failed to resolve channel profile for %q: %v", username, err)
		return nil, fmt.Errorf("failed to resolve channel profile: %w", err)
	}

	return profile, nil
}

// GetWatchHistory returns the caller's watch history, most recent first, each
// video enriched with its owner's public fields. An unknown user or an empty
// history degrades to an empty slice, not an error.
func (uc *channelUseCase) GetWatchHistory(userID string) ([]*entity.WatchedVideo, error) {
	entries, err := uc.channelRepo.GetWatchEntries(userID)
	if err != nil {
		uc.logger.Error("Failed to load watch history for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	if len(entries) == 0 {
		return []*entity.WatchedVideo{}, nil
	}

	videoIDs := make([]string, len(entries))
	for i, entry := range entries {
		videoIDs[i] = entry.VideoID
	}

	videos, err := uc.channelRepo.GetVideosByIDs(videoIDs)
	if err != nil {
		uc.logger.Error("Failed to load history videos for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}

	videosByID := make(map[string]*entity.Video, len(videos))
	ownerIDs := make([]string, 0, len(videos))
	seenOwners := make(map[string]bool, len(videos))
	for _, video := range videos {
		videosByID[video.ID] = video
		if !seenOwners[video.OwnerID] {
			seenOwners[video.OwnerID] = true
			ownerIDs = append(ownerIDs, video.OwnerID)
		}
	}

	owners, err := uc.channelRepo.GetOwnersByIDs(ownerIDs)
	if err != nil {
		uc.logger.Error("Failed to load video owners for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}

	ownersByID := make(map[string]*entity.VideoOwner, len(owners))
	for _, owner := range owners {
		ownersByID[owner.ID] = owner
	}

	// Walk the history entries, not the fetched videos, so the result keeps
	// the history's own ordering. A missing owner leaves the field nil.
	history := make([]*entity.WatchedVideo, 0, len(entries))
	for _, entry := range entries {
		video, ok := videosByID[entry.VideoID]
		if !ok {
			continue
		}
		history = append(history, &entity.WatchedVideo{
			Video:     *video,
			Owner:     ownersByID[video.OwnerID],
			WatchedAt: entry.WatchedAt,
		})
	}

	return history, nil
}

// GetChannelStats merges four independent aggregates. A channel with no
// videos, subscribers or likes yields all zeros.
func (uc *channelUseCase) GetChannelStats(channelID string) (*entity.ChannelStats, error) {
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, entity.ErrInvalidChannelID
	}

	totalVideos, err := uc.channelRepo.CountVideosByOwner(channelID)
	if err != nil {
		uc.logger.Error("Failed to count videos for %s: %v", channelID, err)
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	totalSubscribers, err := uc.channelRepo.CountSubscribers(channelID)
	if err != nil {
		uc.logger.Error("Failed to count subscribers for %s: %v", channelID, err)
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	totalLikes, err := uc.channelRepo.CountLikesForOwnedVideos(channelID)
	if err != nil {
		uc.logger.Error("Failed to count likes for %s: %v", channelID, err)
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	totalViews, err := uc.channelRepo.SumViewsByOwner(channelID)
	if err != nil {
		uc.logger.Error("Failed to sum views for %s: %v", channelID, err)
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	return &entity.ChannelStats{
		TotalVideos:      totalVideos,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
		TotalViews:       totalViews,
	}, nil
}

// GetChannelVideos pages through a channel's published videos, newest first.
// Offset pagination: a write between two page fetches may shift results.
func (uc *channelUseCase) GetChannelVideos(channelID string, page, limit int) ([]*entity.Video, error) {
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, entity.ErrInvalidChannelID
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	videos, err := uc.channelRepo.GetVideosByOwner(channelID, page, limit)
	if err != nil {
		uc.logger.Error("Failed to list videos for channel %s: %v", channelID, err)
		return nil, fmt.Errorf("failed to list channel videos: %w", err)
	}
	return videos, nil
}

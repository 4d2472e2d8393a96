package http

import (
	"errors"
	"net/http"

	"viewtube/internal/entity"
	"viewtube/internal/usecase"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelUseCase usecase.ChannelUseCase
	logger         *logger.Logger
}

func NewChannelHandler(channelUseCase usecase.ChannelUseCase, logger *logger.Logger) *ChannelHandler {
	return &ChannelHandler{
		channelUseCase: channelUseCase,
		logger:         logger,
	}
}

// GetChannelProfile godoc
// @Summary      Get channel profile
// @Description  Get the public profile of a channel by username, including subscriber counts and whether the caller follows it
// @Tags         channels
// @Produce      json
// @Param        channel path string true "Channel username (case-insensitive)"
// @Success      200  {object}  entity.ChannelProfile
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /channels/{channel} [get]
func (h *ChannelHandler) GetChannelProfile(c *gin.Context) {
	viewerID := c.GetString("user_id")
	username := c.Param("channel")

	profile, err := h.channelUseCase.GetChannelProfile(viewerID, username)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidUsername):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrChannelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to get channel profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetWatchHistory godoc
// @Summary      Get watch history
// @Description  Get the caller's watch history, most recent first, each entry enriched with the video owner's public fields
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /me/history [get]
func (h *ChannelHandler) GetWatchHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	history, err := h.channelUseCase.GetWatchHistory(userID)
	if err != nil {
		h.logger.Error("Failed to get watch history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history, "count": len(history)})
}

// GetChannelStats godoc
// @Summary      Get channel statistics
// @Description  Get total videos, subscribers, likes and views for a channel. A channel with no content returns all zeros.
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        channel path string true "Channel ID"
// @Success      200  {object}  entity.ChannelStats
// @Failure      400  {object}  map[string]string
// @Router       /channels/{channel}/stats [get]
func (h *ChannelHandler) GetChannelStats(c *gin.Context) {
	channelID := c.Param("channel")

	stats, err := h.channelUseCase.GetChannelStats(channelID)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidChannelID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get channel stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetChannelVideos godoc
// @Summary      List channel videos
// @Description  Paginated listing of a channel's published videos, newest first
// @Tags         channels
// @Produce      json
// @Param        channel path string true "Channel ID"
// @Param        page query int false "Page number (1-based)"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /channels/{channel}/videos [get]
func (h *ChannelHandler) GetChannelVideos(c *gin.Context) {
	channelID := c.Param("channel")
	page, limit := parsePagination(c.Query("page"), c.Query("limit"))

	videos, err := h.channelUseCase.GetChannelVideos(channelID, page, limit)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidChannelID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to list channel videos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "page": page, "limit": limit})
}

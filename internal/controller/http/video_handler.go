package http

import (
	"errors"
	"net/http"
	"strconv"

	"viewtube/internal/entity"
	"viewtube/internal/usecase"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		logger:       logger,
	}
}

type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UploadVideo godoc
// @Summary      Upload a video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Video title"
// @Param        description formData string false "Video description"
// @Param        duration formData int false "Duration in seconds"
// @Param        video formData file true "Video file"
// @Param        thumbnail formData file false "Thumbnail image"
// @Success      201  {object}  entity.Video
// @Failure      400  {object}  map[string]string
// @Router       /videos [post]
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	userID := c.GetString("user_id")

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	description := c.PostForm("description")
	duration, _ := strconv.Atoi(c.PostForm("duration"))

	videoFile, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}
	thumbnailFile, _ := c.FormFile("thumbnail")

	video, err := h.videoUseCase.UploadVideo(userID, title, description, duration, videoFile, thumbnailFile)
	if err != nil {
		h.logger.Error("Failed to upload video: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, video)
}

// GetVideo godoc
// @Summary      Get a video
// @Description  Get video metadata with like count and the caller's like state
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")

	video, likeCount, isLiked, err := h.videoUseCase.GetVideo(videoID, userID)
	if err != nil {
		if errors.Is(err, entity.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get video: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video":      video,
		"like_count": likeCount,
		"is_liked":   isLiked,
	})
}

// UpdateVideo godoc
// @Summary      Update a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Param        request body UpdateVideoRequest true "Fields to update"
// @Success      200  {object}  entity.Video
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [put]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videoUseCase.UpdateVideo(videoID, userID, req.Title, req.Description)
	if err != nil {
		h.respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")

	if err := h.videoUseCase.DeleteVideo(videoID, userID); err != nil {
		h.respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

// TogglePublish godoc
// @Summary      Toggle publish state
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  entity.Video
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/publish [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")

	video, err := h.videoUseCase.TogglePublish(videoID, userID)
	if err != nil {
		h.respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// ToggleLike godoc
// @Summary      Like or unlike a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/like [post]
func (h *VideoHandler) ToggleLike(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")

	liked, err := h.videoUseCase.ToggleLike(userID, videoID)
	if err != nil {
		if errors.Is(err, entity.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to toggle like: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "Video unliked"
	if liked {
		message = "Video liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "liked": liked})
}

// RecordView godoc
// @Summary      Record a video view
// @Description  Count a view (once per user) and append the video to the caller's watch history
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/view [post]
func (h *VideoHandler) RecordView(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.GetString("user_id")

	counted, err := h.videoUseCase.RecordView(userID, videoID)
	if err != nil {
		if errors.Is(err, entity.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to record view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

func (h *VideoHandler) respondVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Video operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"viewtube/internal/entity"
	"viewtube/internal/usecase"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVideoUseCase is a mock implementation of VideoUseCase
type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) UploadVideo(userID, title, description string, duration int, videoFile, thumbnailFile *multipart.FileHeader) (*entity.Video, error) {
	args := m.Called(userID, title, description, duration, videoFile, thumbnailFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) GetVideo(videoID, userID string) (*entity.Video, int64, bool, error) {
	args := m.Called(videoID, userID)
	if args.Get(0) == nil {
		return nil, 0, false, args.Error(3)
	}
	return args.Get(0).(*entity.Video), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockVideoUseCase) UpdateVideo(videoID, userID string, title, description *string) (*entity.Video, error) {
	args := m.Called(videoID, userID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) DeleteVideo(videoID, userID string) error {
	args := m.Called(videoID, userID)
	return args.Error(0)
}

func (m *MockVideoUseCase) TogglePublish(videoID, userID string) (*entity.Video, error) {
	args := m.Called(videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) ToggleLike(userID, videoID string) (bool, error) {
	args := m.Called(userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoUseCase) GetLikeCount(videoID string) (int64, error) {
	args := m.Called(videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoUseCase) RecordView(userID, videoID string) (bool, error) {
	args := m.Called(userID, videoID)
	return args.Bool(0), args.Error(1)
}

var _ usecase.VideoUseCase = (*MockVideoUseCase)(nil)

func TestGetVideo(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/videos/:id", handler.GetVideo)

	video := &entity.Video{ID: "video-1", Title: "Test Video", Views: 10}
	mockUseCase.On("GetVideo", "video-1", "").Return(video, int64(3), false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/video-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"like_count":3`)
	assert.Contains(t, w.Body.String(), `"is_liked":false`)
	mockUseCase.AssertExpectations(t)
}

func TestGetVideo_NotFound(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/videos/:id", handler.GetVideo)

	mockUseCase.On("GetVideo", "ghost", "").Return(nil, int64(0), false, entity.ErrVideoNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLike_Like(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/like", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ToggleLike(c)
	})

	mockUseCase.On("ToggleLike", "user-123", "video-1").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/video-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)
	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_Unlike(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/like", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ToggleLike(c)
	})

	mockUseCase.On("ToggleLike", "user-123", "video-1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/video-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)
}

func TestRecordView(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/view", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.RecordView(c)
	})

	mockUseCase.On("RecordView", "user-123", "video-1").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/video-1/view", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"counted":true`)
	mockUseCase.AssertExpectations(t)
}

func TestRecordView_AlreadyCounted(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/view", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.RecordView(c)
	})

	mockUseCase.On("RecordView", "user-123", "video-1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/video-1/view", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"counted":false`)
}

func TestUpdateVideo_Forbidden(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/videos/:id", func(c *gin.Context) {
		c.Set("user_id", "intruder")
		handler.UpdateVideo(c)
	})

	mockUseCase.On("UpdateVideo", "video-1", "intruder", mock.Anything, mock.Anything).Return(nil, entity.ErrNotOwner)

	body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/videos/video-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteVideo_NotFound(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/videos/:id", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.DeleteVideo(c)
	})

	mockUseCase.On("DeleteVideo", "ghost", "user-123").Return(entity.ErrVideoNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/videos/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

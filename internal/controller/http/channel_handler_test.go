package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"viewtube/internal/entity"
	"viewtube/internal/usecase"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChannelUseCase is a mock implementation of ChannelUseCase
type MockChannelUseCase struct {
	mock.Mock
}

func (m *MockChannelUseCase) GetChannelProfile(viewerID, username string) (*entity.ChannelProfile, error) {
	args := m.Called(viewerID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelProfile), args.Error(1)
}

func (m *MockChannelUseCase) GetWatchHistory(userID string) ([]*entity.WatchedVideo, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WatchedVideo), args.Error(1)
}

func (m *MockChannelUseCase) GetChannelStats(channelID string) (*entity.ChannelStats, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelStats), args.Error(1)
}

func (m *MockChannelUseCase) GetChannelVideos(channelID string, page, limit int) ([]*entity.Video, error) {
	args := m.Called(channelID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

var _ usecase.ChannelUseCase = (*MockChannelUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetChannelProfile(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel", func(c *gin.Context) {
		c.Set("user_id", "viewer-1")
		handler.GetChannelProfile(c)
	})

	profile := &entity.ChannelProfile{
		ID:               "channel-1",
		Username:         "alice_films",
		SubscribersCount: 10,
		IsSubscribed:     true,
	}
	mockUseCase.On("GetChannelProfile", "viewer-1", "alice_films").Return(profile, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/alice_films", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got entity.ChannelProfile
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Equal(t, "alice_films", got.Username)
	assert.Equal(t, int64(10), got.SubscribersCount)
	assert.True(t, got.IsSubscribed)
	mockUseCase.AssertExpectations(t)
}

func TestGetChannelProfile_Anonymous(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel", handler.GetChannelProfile)

	profile := &entity.ChannelProfile{ID: "channel-1", Username: "alice_films"}
	mockUseCase.On("GetChannelProfile", "", "alice_films").Return(profile, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/alice_films", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetChannelProfile_NotFound(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel", handler.GetChannelProfile)

	mockUseCase.On("GetChannelProfile", "", "ghost").Return(nil, entity.ErrChannelNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetChannelProfile_InvalidUsername(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel", handler.GetChannelProfile)

	mockUseCase.On("GetChannelProfile", "", mock.Anything).Return(nil, entity.ErrInvalidUsername)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/%20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWatchHistory(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/me/history", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.GetWatchHistory(c)
	})

	history := []*entity.WatchedVideo{
		{
			Video:     entity.Video{ID: "video-2", Title: "Second"},
			Owner:     &entity.VideoOwner{ID: "owner-1", Username: "alice_films"},
			WatchedAt: time.Now(),
		},
		{
			Video:     entity.Video{ID: "video-1", Title: "First"},
			Owner:     &entity.VideoOwner{ID: "owner-2", Username: "bob_vlogs"},
			WatchedAt: time.Now().Add(-time.Hour),
		},
	}
	mockUseCase.On("GetWatchHistory", "user-1").Return(history, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me/history", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		History []json.RawMessage `json:"history"`
		Count   int               `json:"count"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.History, 2)
	// The serialized history must not leak credentials
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "refresh_token")
	mockUseCase.AssertExpectations(t)
}

func TestGetWatchHistory_Empty(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/me/history", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.GetWatchHistory(c)
	})

	mockUseCase.On("GetWatchHistory", "user-1").Return([]*entity.WatchedVideo{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me/history", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestGetChannelStats(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel/stats", handler.GetChannelStats)

	stats := &entity.ChannelStats{
		TotalVideos:      3,
		TotalSubscribers: 7,
		TotalLikes:       21,
		TotalViews:       100,
	}
	mockUseCase.On("GetChannelStats", "channel-1").Return(stats, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/channel-1/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got entity.ChannelStats
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalVideos)
	assert.Equal(t, int64(100), got.TotalViews)
}

func TestGetChannelStats_InvalidID(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel/stats", handler.GetChannelStats)

	mockUseCase.On("GetChannelStats", "not-a-uuid").Return(nil, entity.ErrInvalidChannelID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/not-a-uuid/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetChannelVideos(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel/videos", handler.GetChannelVideos)

	videos := []*entity.Video{
		{ID: "video-2", Title: "Second"},
		{ID: "video-1", Title: "First"},
	}
	mockUseCase.On("GetChannelVideos", "channel-1", 2, 10).Return(videos, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/channel-1/videos?page=2&limit=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":2`)
	assert.Contains(t, w.Body.String(), `"limit":10`)
	mockUseCase.AssertExpectations(t)
}

func TestGetChannelVideos_DefaultPagination(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel/videos", handler.GetChannelVideos)

	mockUseCase.On("GetChannelVideos", "channel-1", 1, 20).Return([]*entity.Video{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/channel-1/videos", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetChannelVideos_LimitClamped(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/channels/:channel/videos", handler.GetChannelVideos)

	mockUseCase.On("GetChannelVideos", "channel-1", 1, 100).Return([]*entity.Video{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/channels/channel-1/videos?limit=5000", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

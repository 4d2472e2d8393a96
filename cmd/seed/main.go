package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"viewtube/internal/model"
	"viewtube/pkg/config"
	"viewtube/pkg/database"
	"viewtube/pkg/logger"
	"viewtube/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testUsers := []struct {
		email    string
		username string
		fullName string
		password string
	}{
		{"alice@test.com", "alice_films", "Alice Chen", "password123"},
		{"bob@test.com", "bob_vlogs", "Bob Martin", "password123"},
		{"charlie@test.com", "charlie_tech", "Charlie Diaz", "password123"},
		{"diana@test.com", "diana_cooks", "Diana Petrova", "password123"},
		{"eve@test.com", "eve_travels", "Eve Okafor", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))
	videoIDs := make([]string, 0)

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Email:    userData.email,
			Username: userData.username,
			FullName: userData.fullName,
			Password: string(hashedPassword),
		}

		var existingUser model.UserModel
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)

		videosCount := 2 + (len(userIDs) % 3)
		log.Info("Creating %d videos for user %s", videosCount, user.Username)
		for i := 0; i < videosCount; i++ {
			videoID, err := createVideoWithThumbnail(db, s3Client, httpClient, user.ID, user.Username, i, log)
			if err != nil {
				log.Error("Failed to create video %d for user %s: %v", i+1, user.Username, err)
				continue
			}
			videoIDs = append(videoIDs, videoID)
			time.Sleep(200 * time.Millisecond)
		}
	}

	for i := 0; i < len(userIDs); i++ {
		for j := i + 1; j < len(userIDs); j++ {
			subscriberID := userIDs[i]
			channelID := userIDs[j]

			var existingSub model.SubscriptionModel
			result := db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).First(&existingSub)
			if result.Error == nil {
				continue
			}

			subscription := &model.SubscriptionModel{
				SubscriberID: subscriberID,
				ChannelID:    channelID,
			}
			if err := db.Create(subscription).Error; err != nil {
				log.Error("Failed to create subscription: %v", err)
				continue
			}
		}
	}
	log.Info("Created test subscriptions")

	for i, videoID := range videoIDs {
		likerID := userIDs[i%len(userIDs)]

		var existingLike model.LikeModel
		result := db.Where("resource_id = ? AND resource_type = ? AND liked_by = ?", videoID, "video", likerID).First(&existingLike)
		if result.Error == nil {
			continue
		}

		like := &model.LikeModel{
			ResourceID:   videoID,
			ResourceType: "video",
			LikedBy:      likerID,
		}
		if err := db.Create(like).Error; err != nil {
			log.Error("Failed to create like: %v", err)
			continue
		}

		entry := &model.WatchHistoryModel{
			UserID:    likerID,
			VideoID:   videoID,
			WatchedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}
		if err := db.Create(entry).Error; err != nil {
			log.Error("Failed to create watch history entry: %v", err)
		}
	}
	log.Info("Created test likes and watch history")

	return nil
}

func createVideoWithThumbnail(db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, userID, username string, index int, log *logger.Logger) (string, error) {
	thumbnailSource := fmt.Sprintf("https://picsum.photos/seed/%s-%d/640/360", username, index)

	log.Info("Fetching thumbnail from %s", thumbnailSource)
	resp, err := httpClient.Get(thumbnailSource)
	if err != nil {
		return "", fmt.Errorf("failed to fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("picsum API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	thumbnailKey := fmt.Sprintf("videos/%s/seed_thumb_%d.jpg", userID, index)
	thumbnailURL, err := s3Client.UploadFile(thumbnailKey, bytes.NewReader(imageData), "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail to S3: %w", err)
	}

	videoKey := fmt.Sprintf("videos/%s/seed_%d.mp4", userID, index)
	fileURL, err := s3Client.UploadFile(videoKey, bytes.NewReader([]byte("seed video placeholder")), "video/mp4")
	if err != nil {
		return "", fmt.Errorf("failed to upload video to S3: %w", err)
	}

	video := &model.VideoModel{
		OwnerID:      userID,
		Title:        fmt.Sprintf("Video #%d by %s", index+1, username),
		Description:  fmt.Sprintf("Seeded demo video #%d", index+1),
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURL,
		Duration:     60 + index*30,
		Views:        index * 10,
		IsPublished:  true,
	}
	if err := db.Create(video).Error; err != nil {
		return "", fmt.Errorf("failed to create video: %w", err)
	}

	log.Info("Created video: %s", video.Title)
	return video.ID, nil
}

package usecase

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"viewtube/internal/entity"
	"viewtube/internal/repo/persistent"
	"viewtube/pkg/jwt"
	"viewtube/pkg/logger"
	"viewtube/pkg/queue"
	"viewtube/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthUseCase interface {
	Register(email, username, fullName, password string) (*entity.User, *TokenPair, error)
	Login(email, password string) (*entity.User, *TokenPair, error)
	Logout(userID string) error
	RefreshTokens(refreshToken string) (*TokenPair, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	GetUser(userID string) (*entity.User, error)
	UpdateAccount(userID string, fullName, email *string) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, fileKey, contentType string) (*entity.User, error)
	UploadCoverImage(userID string, fileReader io.Reader, fileKey, contentType string) (*entity.User, error)
	Subscribe(subscriberID, channelID string) error
	Unsubscribe(subscriberID, channelID string) error
	GetSubscriptionStatus(subscriberID, channelID string) (bool, error)
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *authUseCase) Register(email, username, fullName, password string) (*entity.User, *TokenPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, nil, entity.ErrInvalidUsername
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, nil, entity.ErrEmailTaken
	}
	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, nil, entity.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, nil, fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		FullName: fullName,
		Password: string(hashedPassword),
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, nil, fmt.Errorf("failed to create user")
	}

	tokens, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	user.Password = ""
	return user, tokens, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, *TokenPair, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, entity.ErrInvalidCredentials
	}

	tokens, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, tokens, nil
}

func (uc *authUseCase) Logout(userID string) error {
	if err := uc.userRepo.UpdateRefreshToken(userID, ""); err != nil {
		uc.logger.Error("Failed to clear refresh token: %v", err)
		return fmt.Errorf("failed to log out")
	}
	return nil
}

// RefreshTokens verifies the signed refresh claim, checks it against the
// stored token (logout or a previous rotation invalidates it) and rotates the
// pair.
func (uc *authUseCase) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, entity.ErrInvalidRefreshToken
	}

	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, entity.ErrInvalidRefreshToken
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, entity.ErrInvalidRefreshToken
	}

	return uc.issueTokens(user.ID)
}

func (uc *authUseCase) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return entity.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return entity.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to change password")
	}

	user.Password = string(hashedPassword)
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return fmt.Errorf("failed to change password")
	}
	return nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (uc *authUseCase) UpdateAccount(userID string, fullName, email *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, entity.ErrUserNotFound
	}

	if fullName != nil {
		user.FullName = *fullName
	}
	if email != nil && *email != user.Email {
		if _, err := uc.userRepo.GetByEmail(*email); err == nil {
			return nil, entity.ErrEmailTaken
		}
		user.Email = *email
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update account")
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey, contentType string) (*entity.User, error) {
	return uc.uploadImage(userID, fileReader, fileKey, contentType, false)
}

func (uc *authUseCase) UploadCoverImage(userID string, fileReader io.Reader, fileKey, contentType string) (*entity.User, error) {
	return uc.uploadImage(userID, fileReader, fileKey, contentType, true)
}

func (uc *authUseCase) uploadImage(userID string, fileReader io.Reader, fileKey, contentType string, cover bool) (*entity.User, error) {
	imageURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload image: %v", err)
		return nil, fmt.Errorf("failed to upload image")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, entity.ErrUserNotFound
	}

	oldURL := user.AvatarURL
	if cover {
		oldURL = user.CoverImageURL
		user.CoverImageURL = imageURL
	} else {
		user.AvatarURL = imageURL
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	// Best-effort cleanup of the replaced asset.
	if oldURL != "" {
		if key := uc.s3Client.KeyFromURL(oldURL); key != "" {
			if err := uc.s3Client.DeleteFile(key); err != nil {
				uc.logger.Warn("Failed to delete old image %s: %v", key, err)
			}
		}
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (uc *authUseCase) Subscribe(subscriberID, channelID string) error {
	if subscriberID == channelID {
		return entity.ErrSelfSubscription
	}

	if _, err := uc.userRepo.GetByID(channelID); err != nil {
		return entity.ErrChannelNotFound
	}

	existing, err := uc.userRepo.GetSubscription(subscriberID, channelID)
	if err == nil && existing != nil && existing.ID != "" {
		return entity.ErrAlreadySubscribed
	}

	if err := uc.userRepo.CreateSubscription(subscriberID, channelID); err != nil {
		uc.logger.Error("Failed to create subscription: %v", err)
		return fmt.Errorf("failed to subscribe")
	}

	// Notify the channel owner about the new subscriber via RabbitMQ.
	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":          "subscription",
				"user_id":       channelID,
				"subscriber_id": subscriberID,
				"priority":      4,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish subscription task: %v", err)
			}
		}()
	}

	return nil
}

func (uc *authUseCase) Unsubscribe(subscriberID, channelID string) error {
	if err := uc.userRepo.DeleteSubscription(subscriberID, channelID); err != nil {
		uc.logger.Error("Failed to delete subscription: %v", err)
		return fmt.Errorf("failed to unsubscribe")
	}
	return nil
}

func (uc *authUseCase) GetSubscriptionStatus(subscriberID, channelID string) (bool, error) {
	subscription, err := uc.userRepo.GetSubscription(subscriberID, channelID)
	if err != nil {
		return false, nil
	}
	return subscription != nil && subscription.ID != "", nil
}

func (uc *authUseCase) issueTokens(userID string) (*TokenPair, error) {
	accessToken, err := uc.jwtService.GenerateToken(userID, "")
	if err != nil {
		uc.logger.Error("Failed to generate access token: %v", err)
		return nil, fmt.Errorf("failed to generate token")
	}

	refreshToken, err := uc.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		uc.logger.Error("Failed to generate refresh token: %v", err)
		return nil, fmt.Errorf("failed to generate token")
	}

	if err := uc.userRepo.UpdateRefreshToken(userID, refreshToken); err != nil {
		uc.logger.Error("Failed to store refresh token: %v", err)
		return nil, fmt.Errorf("failed to generate token")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

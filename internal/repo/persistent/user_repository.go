package persistent

import (
	"viewtube/internal/entity"
	"viewtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateRefreshToken(userID, refreshToken string) error
	GetSubscriptions(subscriberID string) ([]*entity.Subscription, error)
	CreateSubscription(subscriberID, channelID string) error
	DeleteSubscription(subscriberID, channelID string) error
	GetSubscription(subscriberID, channelID string) (*entity.Subscription, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.Save(userModel).Error
}

func (r *userRepository) UpdateRefreshToken(userID, refreshToken string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", userID).Update("refresh_token", refreshToken).Error
}

func (r *userRepository) GetSubscriptions(subscriberID string) ([]*entity.Subscription, error) {
	var subscriptionModels []model.SubscriptionModel
	if err := r.db.Where("subscriber_id = ?", subscriberID).Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]*entity.Subscription, len(subscriptionModels))
	for i := range subscriptionModels {
		subscriptions[i] = ToSubscriptionEntity(&subscriptionModels[i])
	}
	return subscriptions, nil
}

func (r *userRepository) CreateSubscription(subscriberID, channelID string) error {
	var existing model.SubscriptionModel
	err := r.db.Unscoped().Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			if err := r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error; err != nil {
				return err
			}
			return nil
		}
		return nil
	}

	subscriptionModel := &model.SubscriptionModel{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	return r.db.Create(subscriptionModel).Error
}

func (r *userRepository) DeleteSubscription(subscriberID, channelID string) error {
	return r.db.Unscoped().Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&model.SubscriptionModel{}).Error
}

func (r *userRepository) GetSubscription(subscriberID, channelID string) (*entity.Subscription, error) {
	var subscriptionModel model.SubscriptionModel
	err := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).First(&subscriptionModel).Error
	if err != nil {
		return nil, err
	}
	return ToSubscriptionEntity(&subscriptionModel), nil
}

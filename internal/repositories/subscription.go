package repositories

import (
	"context"

	"github.com/devrahulm/vidtube-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepository exposes the counting primitives the channel profile
// is built from, plus the toggle mutation.
type SubscriptionRepository interface {
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	// Toggle creates the edge if absent and removes it if present.
	// Returns true when the edge exists after the call.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

type gormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a postgres-backed SubscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &gormSubscriptionRepository{db: db}
}

func (r *gormSubscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *gormSubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	return count, err
}

func (r *gormSubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var subscribed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}
		edge := models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	return subscribed, err
}

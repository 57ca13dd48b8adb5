package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a directed follow edge: the subscriber follows the channel.
// A user may appear on either side of many edges; the pair is unique.
type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SubscriberID uuid.UUID `json:"subscriberId" gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriber_channel"`
	ChannelID    uuid.UUID `json:"channelId" gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriber_channel"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

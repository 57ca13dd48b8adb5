package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is the target of watch-history entries. Upload and playback live in a
// separate service; this record only anchors the relations owned here.
type Video struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID      uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Title        string    `json:"title" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// WatchHistoryItem records that a user watched a video. Ordering is by
// WatchedAt descending.
type WatchHistoryItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:uuid;not null;index"`
	WatchedAt time.Time `json:"watchedAt" gorm:"autoCreateTime;index"`
}

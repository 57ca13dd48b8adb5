package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored credentials.
const passwordCost = 10

// User is an account record. Password and RefreshToken are never serialized;
// marshalling a User therefore yields the public (sanitized) projection.
type User struct {
	ID            uuid.UUID          `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username      string             `json:"username" gorm:"uniqueIndex;not null"`
	Email         string             `json:"email" gorm:"uniqueIndex;not null"`
	FullName      string             `json:"fullName" gorm:"not null"`
	AvatarURL     string             `json:"avatarUrl" gorm:"not null"`
	CoverImageURL string             `json:"coverImageUrl"`
	Password      string             `json:"-" gorm:"not null"`
	RefreshToken  *string            `json:"-"`
	WatchHistory  []WatchHistoryItem `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time          `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time          `json:"updatedAt" gorm:"autoUpdateTime"`
}

// SetPassword hashes plaintext and stores the result. It is the only writer
// of the Password field; callers must never assign a hash directly.
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

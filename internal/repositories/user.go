package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/devrahulm/vidtube-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a create violates the username or
	// email uniqueness constraint.
	ErrDuplicateUser = errors.New("username or email already exists")
)

// UserRepository is the persistence contract for user records. All mutations
// of a single user are expressed as atomic updates by id so concurrent
// requests cannot interleave read-modify-write cycles.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	// SwapRefreshToken replaces the stored refresh token only if it still
	// equals previous. Returns false when another rotation won the race or
	// the token was already cleared.
	SwapRefreshToken(ctx context.Context, id uuid.UUID, previous, next string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	UpdateCoverImage(ctx context.Context, id uuid.UUID, coverImageURL string) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a postgres-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail matches the identifier against either unique column.
// Usernames are stored lowercase, so the identifier is folded before matching.
func (r *gormUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	return r.updateByID(ctx, id, map[string]interface{}{"refresh_token": token})
}

func (r *gormUserRepository) SwapRefreshToken(ctx context.Context, id uuid.UUID, previous, next string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", id, previous).
		Update("refresh_token", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gormUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateByID(ctx, id, map[string]interface{}{"password": passwordHash})
}

func (r *gormUserRepository) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error {
	err := r.updateByID(ctx, id, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

func (r *gormUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return r.updateByID(ctx, id, map[string]interface{}{"avatar_url": avatarURL})
}

func (r *gormUserRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, coverImageURL string) error {
	return r.updateByID(ctx, id, map[string]interface{}{"cover_image_url": coverImageURL})
}

// updateByID issues a single UPDATE ... WHERE id = ? statement.
func (r *gormUserRepository) updateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

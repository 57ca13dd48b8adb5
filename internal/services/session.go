package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/devrahulm/vidtube-server/internal/logger"
	"github.com/devrahulm/vidtube-server/internal/models"
	"github.com/devrahulm/vidtube-server/internal/repositories"
)

// AssetStore is the upload collaborator. Implementations return the public
// URL of the stored object.
type AssetStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// AssetUpload is a validated file crossing the HTTP boundary. The handler
// builds it once from the multipart form; a nil *AssetUpload means the field
// was absent.
type AssetUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// RegisterInput carries everything needed to create an account. Avatar is
// mandatory, Cover optional.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *AssetUpload
	Cover    *AssetUpload
}

// SessionService orchestrates the credential and session lifecycle:
// registration, login/logout, refresh and profile mutations.
type SessionService struct {
	users  repositories.UserRepository
	tokens *TokenService
	assets AssetStore
}

func NewSessionService(users repositories.UserRepository, tokens *TokenService, assets AssetStore) *SessionService {
	return &SessionService{users: users, tokens: tokens, assets: assets}
}

// Register creates an account and returns the sanitized user record.
func (s *SessionService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	password := strings.TrimSpace(in.Password)

	if username == "" || email == "" || fullName == "" || password == "" {
		return nil, Validation("all fields are required")
	}
	if in.Avatar == nil {
		return nil, Validation("avatar file is required")
	}

	var avatarURL, coverURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.uploadAsset(gctx, "avatars", in.Avatar)
		if err != nil {
			return err
		}
		avatarURL = url
		return nil
	})
	if in.Cover != nil {
		g.Go(func() error {
			url, err := s.uploadAsset(gctx, "covers", in.Cover)
			if err != nil {
				return err
			}
			coverURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, Internal("failed to hash password", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == repositories.ErrDuplicateUser {
			return nil, Conflict("user with same username or email already exists")
		}
		return nil, Internal("failed to create user", err)
	}

	// Reload to pick up store-assigned fields and confirm the write landed.
	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, Internal("something went wrong while registering the user", err)
	}

	logger.Info("user registered", logger.String("username", created.Username))
	return created, nil
}

// Login verifies credentials and issues a fresh token pair. Issuing the pair
// overwrites any previously stored refresh token.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (*models.User, *TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, nil, Validation("username or email is required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, nil, NotFound("user does not exist")
		}
		return nil, nil, Internal("failed to look up user", err)
	}

	if !user.CheckPassword(password) {
		logger.Warn("login failed: invalid password", logger.String("identifier", identifier))
		return nil, nil, Unauthorized("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("user logged in", logger.String("username", user.Username))
	return user, pair, nil
}

// Logout clears the stored refresh token so it can never be rotated again.
// Calling it for a user who is already logged out is a no-op.
func (s *SessionService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil
		}
		return Internal("failed to clear refresh token", err)
	}
	return nil
}

// Refresh rotates the presented refresh token into a new pair.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if strings.TrimSpace(presented) == "" {
		return nil, Unauthorized("refresh token is required")
	}
	return s.tokens.Rotate(ctx, presented)
}

// ChangePassword verifies the old password before rehashing the new one.
func (s *SessionService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return NotFound("user does not exist")
		}
		return Internal("failed to look up user", err)
	}

	if !user.CheckPassword(oldPassword) {
		return Unauthorized("wrong password")
	}
	if strings.TrimSpace(newPassword) == "" {
		return Validation("new password is required")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return Internal("failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, user.Password); err != nil {
		return Internal("failed to update password", err)
	}
	return nil
}

// UpdateAccount updates full name and email; both are required.
func (s *SessionService) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, Validation("full name and email are required")
	}

	if err := s.users.UpdateAccount(ctx, userID, fullName, email); err != nil {
		switch err {
		case repositories.ErrUserNotFound:
			return nil, NotFound("user does not exist")
		case repositories.ErrDuplicateUser:
			return nil, Conflict("email already in use")
		default:
			return nil, Internal("failed to update account", err)
		}
	}
	return s.reload(ctx, userID)
}

// UpdateAvatar uploads the new avatar and swaps the stored URL. Cleanup of
// the previous object is not attempted.
func (s *SessionService) UpdateAvatar(ctx context.Context, userID uuid.UUID, upload *AssetUpload) (*models.User, error) {
	if upload == nil {
		return nil, Validation("avatar file is required")
	}
	url, err := s.uploadAsset(ctx, "avatars", upload)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, NotFound("user does not exist")
		}
		return nil, Internal("failed to update avatar", err)
	}
	return s.reload(ctx, userID)
}

// UpdateCoverImage is the cover-image counterpart of UpdateAvatar.
func (s *SessionService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, upload *AssetUpload) (*models.User, error) {
	if upload == nil {
		return nil, Validation("cover image file is required")
	}
	url, err := s.uploadAsset(ctx, "covers", upload)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateCoverImage(ctx, userID, url); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, NotFound("user does not exist")
		}
		return nil, Internal("failed to update cover image", err)
	}
	return s.reload(ctx, userID)
}

// CurrentUser returns the sanitized record for the authenticated caller.
func (s *SessionService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.reload(ctx, userID)
}

func (s *SessionService) reload(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, NotFound("user does not exist")
		}
		return nil, Internal("failed to look up user", err)
	}
	return user, nil
}

func (s *SessionService) uploadAsset(ctx context.Context, prefix string, upload *AssetUpload) (string, error) {
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New(), filepath.Ext(upload.Filename))
	url, err := s.assets.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return "", Internal("asset upload failed", err)
	}
	if url == "" {
		return "", Internal("asset store returned no URL", nil)
	}
	return url, nil
}

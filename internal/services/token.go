package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devrahulm/vidtube-server/internal/config"
	"github.com/devrahulm/vidtube-server/internal/models"
	"github.com/devrahulm/vidtube-server/internal/repositories"
)

// AccessClaims travel inside the short-lived access token and are enough to
// identify the caller without a database round trip.
type AccessClaims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the user id; the refresh token's authority comes
// from matching the copy stored on the user row, not from its claims.
type RefreshClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful login or rotation hands back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs, verifies and rotates the two token kinds. Exactly one
// refresh token is valid per user at any time: issuing a new one overwrites
// the stored value, so presenting a stale token is detectable as reuse.
type TokenService struct {
	users repositories.UserRepository
	cfg   config.TokenConfig
}

func NewTokenService(users repositories.UserRepository, cfg config.TokenConfig) *TokenService {
	return &TokenService{users: users, cfg: cfg}
}

// IssueAccessToken signs a short-lived token carrying identity claims.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken signs a long-lived token carrying only the user id.
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// IssuePair generates both tokens and persists the refresh token on the user
// row, invalidating any previously issued one. No pair is returned unless
// the store accepted the new token.
func (s *TokenService) IssuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, Internal("failed to issue access token", err)
	}
	refreshToken, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, Internal("failed to issue refresh token", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, Internal("failed to persist refresh token", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccessToken validates signature, expiry and signing method.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthorized("invalid access token")
	}
	return claims, nil
}

func (s *TokenService) verifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthorized("invalid refresh token")
	}
	return claims, nil
}

// Rotate exchanges a presented refresh token for a fresh pair. The presented
// token must match the stored one byte for byte; a mismatch means it was
// already rotated (or cleared by logout) and is treated as reuse. The final
// swap is conditional on the stored value, so of two concurrent rotations
// with the same token only one can succeed.
func (s *TokenService) Rotate(ctx context.Context, presented string) (*TokenPair, error) {
	claims, err := s.verifyRefreshToken(presented)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, Unauthorized("invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, Unauthorized("invalid refresh token")
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, Unauthorized("refresh token expired or used")
	}

	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, Internal("failed to issue access token", err)
	}
	refreshToken, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, Internal("failed to issue refresh token", err)
	}

	swapped, err := s.users.SwapRefreshToken(ctx, user.ID, presented, refreshToken)
	if err != nil {
		return nil, Internal("failed to persist refresh token", err)
	}
	if !swapped {
		return nil, Unauthorized("refresh token expired or used")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

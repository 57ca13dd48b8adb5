package services_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devrahulm/vidtube-server/internal/models"
	"github.com/devrahulm/vidtube-server/internal/repositories"
)

// memUserRepo is an in-memory UserRepository with the same atomicity
// guarantees the postgres implementation provides.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User

	createErr error
	updateErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicateUser
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*models.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *memUserRepo) SwapRefreshToken(_ context.Context, id uuid.UUID, previous, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return false, r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	if u.RefreshToken == nil || *u.RefreshToken != previous {
		return false, nil
	}
	u.RefreshToken = &next
	return true, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (r *memUserRepo) UpdateAccount(_ context.Context, id uuid.UUID, fullName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Email == email {
			return repositories.ErrDuplicateUser
		}
	}
	u.FullName = fullName
	u.Email = email
	return nil
}

func (r *memUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (r *memUserRepo) UpdateCoverImage(_ context.Context, id uuid.UUID, coverImageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.CoverImageURL = coverImageURL
	return nil
}

// stored returns the live record, bypassing the interface.
func (r *memUserRepo) stored(id uuid.UUID) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

type edge struct {
	subscriber uuid.UUID
	channel    uuid.UUID
}

// memSubscriptionRepo is an in-memory SubscriptionRepository.
type memSubscriptionRepo struct {
	mu    sync.Mutex
	edges map[edge]bool
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{edges: make(map[edge]bool)}
}

func (r *memSubscriptionRepo) add(subscriber, channel uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges[edge{subscriber, channel}] = true
}

func (r *memSubscriptionRepo) CountSubscribers(_ context.Context, channelID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for e := range r.edges {
		if e.channel == channelID {
			count++
		}
	}
	return count, nil
}

func (r *memSubscriptionRepo) CountSubscribedTo(_ context.Context, subscriberID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for e := range r.edges {
		if e.subscriber == subscriberID {
			count++
		}
	}
	return count, nil
}

func (r *memSubscriptionRepo) IsSubscribed(_ context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.edges[edge{subscriberID, channelID}], nil
}

func (r *memSubscriptionRepo) Toggle(_ context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := edge{subscriberID, channelID}
	if r.edges[e] {
		delete(r.edges, e)
		return false, nil
	}
	r.edges[e] = true
	return true, nil
}

// fakeAssetStore records uploads and returns deterministic URLs.
type fakeAssetStore struct {
	mu      sync.Mutex
	uploads []string

	err      error
	emptyURL bool
}

func (s *fakeAssetStore) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.emptyURL {
		return "", nil
	}
	if body != nil {
		_, _ = io.Copy(io.Discard, body)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, key)
	return "https://cdn.example.com/" + key, nil
}

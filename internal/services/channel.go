package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/devrahulm/vidtube-server/internal/repositories"
)

// ChannelProfile is the public view of a user as a channel, relative to an
// optional viewer.
type ChannelProfile struct {
	FullName             string `json:"fullName"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	AvatarURL            string `json:"avatarUrl"`
	CoverImageURL        string `json:"coverImageUrl"`
	SubscribersCount     int64  `json:"subscribersCount"`
	ChannelsSubscribedTo int64  `json:"channelsSubscribedToCount"`
	IsSubscribed         bool   `json:"isSubscribed"`
}

// ChannelService computes subscriber statistics for channel pages.
type ChannelService struct {
	users         repositories.UserRepository
	subscriptions repositories.SubscriptionRepository
}

func NewChannelService(users repositories.UserRepository, subscriptions repositories.SubscriptionRepository) *ChannelService {
	return &ChannelService{users: users, subscriptions: subscriptions}
}

// GetChannelProfile resolves the channel by username and aggregates its edge
// counts. viewerID may be nil (anonymous viewer): IsSubscribed is then false
// and no error is raised. The three read-only queries run concurrently.
func (s *ChannelService) GetChannelProfile(ctx context.Context, channelUsername string, viewerID *uuid.UUID) (*ChannelProfile, error) {
	channelUsername = strings.ToLower(strings.TrimSpace(channelUsername))
	if channelUsername == "" {
		return nil, Validation("username is required")
	}

	channel, err := s.users.FindByUsername(ctx, channelUsername)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, NotFound("channel does not exist")
		}
		return nil, Internal("failed to look up channel", err)
	}

	profile := &ChannelProfile{
		FullName:      channel.FullName,
		Username:      channel.Username,
		Email:         channel.Email,
		AvatarURL:     channel.AvatarURL,
		CoverImageURL: channel.CoverImageURL,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.subscriptions.CountSubscribers(gctx, channel.ID)
		if err != nil {
			return err
		}
		profile.SubscribersCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.subscriptions.CountSubscribedTo(gctx, channel.ID)
		if err != nil {
			return err
		}
		profile.ChannelsSubscribedTo = count
		return nil
	})
	if viewerID != nil {
		viewer := *viewerID
		g.Go(func() error {
			subscribed, err := s.subscriptions.IsSubscribed(gctx, viewer, channel.ID)
			if err != nil {
				return err
			}
			profile.IsSubscribed = subscribed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Internal("failed to aggregate channel stats", err)
	}

	return profile, nil
}

// ToggleSubscription flips the viewer's follow edge to the channel and
// reports the resulting state.
func (s *ChannelService) ToggleSubscription(ctx context.Context, viewerID uuid.UUID, channelUsername string) (bool, error) {
	channelUsername = strings.ToLower(strings.TrimSpace(channelUsername))
	if channelUsername == "" {
		return false, Validation("username is required")
	}

	channel, err := s.users.FindByUsername(ctx, channelUsername)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return false, NotFound("channel does not exist")
		}
		return false, Internal("failed to look up channel", err)
	}

	if channel.ID == viewerID {
		return false, Validation("cannot subscribe to your own channel")
	}

	subscribed, err := s.subscriptions.Toggle(ctx, viewerID, channel.ID)
	if err != nil {
		return false, Internal("failed to toggle subscription", err)
	}
	return subscribed, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/maheshrc27/feedhub/configs"
	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/repository"
	"github.com/maheshrc27/feedhub/pkg/utils"
)

const (
	defaultFetchLimit = 5
	maxFetchLimit     = 20
)

type FeedService interface {
	List(ctx context.Context, teamID int64) ([]*models.Feed, error)
	Create(ctx context.Context, teamID int64, platform, accountID, label string) (int64, error)
	Remove(ctx context.Context, teamID, feedID int64) error
	Refresh(ctx context.Context, teamID, feedID int64, limit int) ([]*models.NormalizedPost, error)
	CachedPosts(ctx context.Context, teamID, feedID int64, limit int) ([]*models.NormalizedPost, error)
}

type feedService struct {
	cfg      config.Config
	registry providers.Registry
	feeds    repository.FeedRepository
	tokens   repository.OAuthTokenRepository
	cache    repository.PostCacheRepository
}

func NewFeedService(
	cfg config.Config,
	registry providers.Registry,
	feeds repository.FeedRepository,
	tokens repository.OAuthTokenRepository,
	cache repository.PostCacheRepository) FeedService {
	return &feedService{
		cfg:      cfg,
		registry: registry,
		feeds:    feeds,
		tokens:   tokens,
		cache:    cache,
	}
}

func (s *feedService) List(ctx context.Context, teamID int64) ([]*models.Feed, error) {
	feeds, err := s.feeds.ListByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("error listing feeds")
	}
	return feeds, nil
}

func (s *feedService) Create(ctx context.Context, teamID int64, platform, accountID, label string) (int64, error) {
	if _, ok := s.registry.Get(platform); !ok {
		return 0, ErrInvalidPlatform
	}

	if accountID == "" {
		err := errors.New("account id is empty")
		slog.Info(err.Error())
		return 0, err
	}

	// A feed without an active token would only ever fail; require the
	// connection up front. No foreign key backs this so the disconnect
	// cascade stays two explicit deletes.
	token, err := s.tokens.Get(ctx, teamID, platform)
	if err != nil {
		return 0, err
	}
	if token == nil {
		return 0, ErrNotConnected
	}

	feed := &models.Feed{
		TeamID:    teamID,
		Platform:  platform,
		AccountID: accountID,
		Label:     label,
	}

	id, err := s.feeds.Create(ctx, feed)
	if err != nil {
		return 0, fmt.Errorf("error creating feed")
	}
	return id, nil
}

func (s *feedService) Remove(ctx context.Context, teamID, feedID int64) error {
	feed, err := s.feeds.GetByID(ctx, teamID, feedID)
	if err != nil {
		return err
	}
	if feed == nil {
		return ErrFeedNotFound
	}
	return s.feeds.Remove(ctx, teamID, feedID)
}

// Refresh pulls the feed's latest posts from its platform and upserts them
// into the cache. A cache fault never fails a refresh that already fetched
// successfully; it is logged and swallowed.
func (s *feedService) Refresh(ctx context.Context, teamID, feedID int64, limit int) ([]*models.NormalizedPost, error) {
	feed, err := s.feeds.GetByID(ctx, teamID, feedID)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, ErrFeedNotFound
	}

	token, err := s.tokens.Get(ctx, teamID, feed.Platform)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrNotConnected
	}

	// Fail fast instead of issuing a doomed provider call.
	if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	prov, ok := s.registry.Get(feed.Platform)
	if !ok {
		return nil, ErrInvalidPlatform
	}

	accessToken, err := utils.Decrypt(token.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	posts, err := prov.FetchPosts(ctx, accessToken, feed.AccountID, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		if err := s.cache.Upsert(ctx, teamID, feed.Platform, feed.AccountID, p); err != nil {
			slog.Warn("post cache write failed",
				"feed_id", feed.ID,
				"post_id", p.PostID,
				"error", err.Error())
		}
	}

	return posts, nil
}

func (s *feedService) CachedPosts(ctx context.Context, teamID, feedID int64, limit int) ([]*models.NormalizedPost, error) {
	feed, err := s.feeds.GetByID(ctx, teamID, feedID)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, ErrFeedNotFound
	}
	return s.cache.ListByAccount(ctx, teamID, feed.Platform, feed.AccountID, clampLimit(limit))
}

// ErrorPlaceholder is the single synthetic post rendered for a failed
// refresh. It is never persisted.
func ErrorPlaceholder(err error) *models.NormalizedPost {
	return &models.NormalizedPost{
		Title:       "Unable to load posts",
		Description: err.Error(),
		IsError:     true,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultFetchLimit
	}
	if limit > maxFetchLimit {
		return maxFetchLimit
	}
	return limit
}

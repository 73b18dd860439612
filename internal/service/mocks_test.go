package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/transfer"
)

// In-memory repository fakes keyed the same way the SQL tables are, so the
// team scoping rules hold in tests too.

type fakePlatformConfigRepo struct {
	rows map[string]*models.PlatformConfig
}

func newFakePlatformConfigRepo() *fakePlatformConfigRepo {
	return &fakePlatformConfigRepo{rows: make(map[string]*models.PlatformConfig)}
}

func teamPlatformKey(teamID int64, platform string) string {
	return fmt.Sprintf("%d/%s", teamID, platform)
}

func (r *fakePlatformConfigRepo) GetByTeamPlatform(_ context.Context, teamID int64, platform string) (*models.PlatformConfig, error) {
	pc, ok := r.rows[teamPlatformKey(teamID, platform)]
	if !ok {
		return nil, nil
	}
	copied := *pc
	return &copied, nil
}

func (r *fakePlatformConfigRepo) ListByTeamID(_ context.Context, teamID int64) ([]*models.PlatformConfig, error) {
	var configs []*models.PlatformConfig
	for _, pc := range r.rows {
		if pc.TeamID == teamID {
			copied := *pc
			configs = append(configs, &copied)
		}
	}
	return configs, nil
}

func (r *fakePlatformConfigRepo) Upsert(_ context.Context, pc *models.PlatformConfig, secret *string) error {
	key := teamPlatformKey(pc.TeamID, pc.Platform)
	copied := *pc
	if secret != nil {
		copied.ClientSecret = *secret
	} else if existing, ok := r.rows[key]; ok {
		copied.ClientSecret = existing.ClientSecret
	}
	copied.UpdatedAt = time.Now()
	r.rows[key] = &copied
	return nil
}

type fakeTokenRepo struct {
	rows map[string]*models.OAuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{rows: make(map[string]*models.OAuthToken)}
}

func (r *fakeTokenRepo) Get(_ context.Context, teamID int64, platform string) (*models.OAuthToken, error) {
	t, ok := r.rows[teamPlatformKey(teamID, platform)]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTokenRepo) ListByTeamID(_ context.Context, teamID int64) ([]*models.OAuthToken, error) {
	var tokens []*models.OAuthToken
	for _, t := range r.rows {
		if t.TeamID == teamID {
			copied := *t
			tokens = append(tokens, &copied)
		}
	}
	return tokens, nil
}

func (r *fakeTokenRepo) Upsert(_ context.Context, t *models.OAuthToken) error {
	copied := *t
	copied.UpdatedAt = time.Now()
	r.rows[teamPlatformKey(t.TeamID, t.Platform)] = &copied
	return nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, teamID int64, platform string) error {
	delete(r.rows, teamPlatformKey(teamID, platform))
	return nil
}

type fakeFeedRepo struct {
	rows   map[int64]*models.Feed
	nextID int64
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{rows: make(map[int64]*models.Feed)}
}

func (r *fakeFeedRepo) Create(_ context.Context, f *models.Feed) (int64, error) {
	r.nextID++
	copied := *f
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.rows[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeFeedRepo) GetByID(_ context.Context, teamID, id int64) (*models.Feed, error) {
	f, ok := r.rows[id]
	if !ok || f.TeamID != teamID {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFeedRepo) ListByTeamID(_ context.Context, teamID int64) ([]*models.Feed, error) {
	var feeds []*models.Feed
	for _, f := range r.rows {
		if f.TeamID == teamID {
			copied := *f
			feeds = append(feeds, &copied)
		}
	}
	return feeds, nil
}

func (r *fakeFeedRepo) Remove(_ context.Context, teamID, id int64) error {
	if f, ok := r.rows[id]; ok && f.TeamID == teamID {
		delete(r.rows, id)
	}
	return nil
}

func (r *fakeFeedRepo) RemoveByPlatform(_ context.Context, teamID int64, platform string) error {
	for id, f := range r.rows {
		if f.TeamID == teamID && f.Platform == platform {
			delete(r.rows, id)
		}
	}
	return nil
}

type fakePostCacheRepo struct {
	rows    map[string]*models.NormalizedPost
	failing bool
}

func newFakePostCacheRepo() *fakePostCacheRepo {
	return &fakePostCacheRepo{rows: make(map[string]*models.NormalizedPost)}
}

func cacheKey(teamID int64, platform, accountID, postID string) string {
	return fmt.Sprintf("%d/%s/%s/%s", teamID, platform, accountID, postID)
}

func (r *fakePostCacheRepo) Upsert(_ context.Context, teamID int64, platform, accountID string, p *models.NormalizedPost) error {
	if r.failing {
		return fmt.Errorf("cache unavailable")
	}
	copied := *p
	r.rows[cacheKey(teamID, platform, accountID, p.PostID)] = &copied
	return nil
}

func (r *fakePostCacheRepo) ListByAccount(_ context.Context, teamID int64, platform, accountID string, limit int) ([]*models.NormalizedPost, error) {
	prefix := fmt.Sprintf("%d/%s/%s/", teamID, platform, accountID)
	var posts []*models.NormalizedPost
	for key, p := range r.rows {
		if len(posts) == limit {
			break
		}
		if strings.HasPrefix(key, prefix) {
			copied := *p
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

// stubProvider counts calls so tests can assert which provider operations
// ran, and with what.
type stubProvider struct {
	key            string
	exchangeCalls  int
	fetchCalls     int
	lastCreds      *providers.ClientCredentials
	lastFetchLimit int
	exchangeResult *transfer.TokenResult
	exchangeErr    error
	fetchPosts     []*models.NormalizedPost
	fetchErr       error
}

func (p *stubProvider) Key() string { return p.key }

func (p *stubProvider) Defaults() providers.ClientCredentials {
	return providers.ClientCredentials{
		AuthURL:  "https://provider.test/authorize",
		TokenURL: "https://provider.test/token",
		Scopes:   "read",
	}
}

func (p *stubProvider) AuthorizeURL(creds *providers.ClientCredentials, state string) string {
	p.lastCreds = creds
	return fmt.Sprintf("%s?client_id=%s&state=%s", creds.AuthURL, creds.ClientID, state)
}

func (p *stubProvider) Exchange(_ context.Context, creds *providers.ClientCredentials, code string) (*transfer.TokenResult, error) {
	p.exchangeCalls++
	p.lastCreds = creds
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.exchangeResult, nil
}

func (p *stubProvider) FetchPosts(_ context.Context, accessToken, accountID string, limit int) ([]*models.NormalizedPost, error) {
	p.fetchCalls++
	p.lastFetchLimit = limit
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.fetchPosts, nil
}

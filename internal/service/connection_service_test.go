package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	config "github.com/maheshrc27/feedhub/configs"
	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/transfer"
	"github.com/maheshrc27/feedhub/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type connectionFixture struct {
	svc      ConnectionService
	provider *stubProvider
	states   StateStore
	configs  *fakePlatformConfigRepo
	tokens   *fakeTokenRepo
	feeds    *fakeFeedRepo
}

func newConnectionFixture(platform string, cfg *config.Config) *connectionFixture {
	if cfg == nil {
		cfg = &config.Config{
			OAuthDefaults: map[string]config.OAuthClient{
				platform: {ClientID: "client-id", ClientSecret: "client-secret"},
			},
			OAuthRedirectBase: "http://localhost:3000",
			SecretKey:         testSecretKey,
		}
	}

	provider := &stubProvider{key: platform}
	f := &connectionFixture{
		provider: provider,
		states:   NewStateStore(10 * time.Minute),
		configs:  newFakePlatformConfigRepo(),
		tokens:   newFakeTokenRepo(),
		feeds:    newFakeFeedRepo(),
	}
	f.svc = NewConnectionService(*cfg, providers.Registry{platform: provider}, f.states, f.configs, f.tokens, f.feeds)
	return f
}

func TestBeginAuthStoresPendingState(t *testing.T) {
	f := newConnectionFixture("youtube", nil)

	authURL, err := f.svc.BeginAuth(context.Background(), 1, "youtube")
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	pending, ok := f.states.Get(1)
	require.True(t, ok, "pending authorization should be stored")
	assert.Equal(t, state, pending.State)
	assert.Equal(t, "youtube", pending.Platform)
}

func TestBeginAuthSingleSlotOverwrite(t *testing.T) {
	cfg := &config.Config{
		OAuthDefaults: map[string]config.OAuthClient{
			"youtube":  {ClientID: "yt-id", ClientSecret: "yt-secret"},
			"facebook": {ClientID: "fb-id", ClientSecret: "fb-secret"},
		},
		OAuthRedirectBase: "http://localhost:3000",
		SecretKey:         testSecretKey,
	}
	yt := &stubProvider{key: "youtube"}
	fb := &stubProvider{key: "facebook"}
	states := NewStateStore(10 * time.Minute)
	svc := NewConnectionService(*cfg, providers.Registry{"youtube": yt, "facebook": fb}, states,
		newFakePlatformConfigRepo(), newFakeTokenRepo(), newFakeFeedRepo())

	_, err := svc.BeginAuth(context.Background(), 1, "youtube")
	require.NoError(t, err)
	_, err = svc.BeginAuth(context.Background(), 1, "facebook")
	require.NoError(t, err)

	pending, ok := states.Get(1)
	require.True(t, ok)
	assert.Equal(t, "facebook", pending.Platform, "newer authorization should take the slot")
}

func TestBeginAuthMissingCredentials(t *testing.T) {
	cfg := &config.Config{
		OAuthDefaults:     map[string]config.OAuthClient{},
		OAuthRedirectBase: "http://localhost:3000",
		SecretKey:         testSecretKey,
	}
	f := newConnectionFixture("youtube", cfg)

	_, err := f.svc.BeginAuth(context.Background(), 1, "youtube")
	assert.ErrorIs(t, err, ErrMissingClientCredentials)
}

func TestBeginAuthStoredConfigWins(t *testing.T) {
	f := newConnectionFixture("linkedin", nil)
	f.configs.rows[teamPlatformKey(1, "linkedin")] = &models.PlatformConfig{
		TeamID:   1,
		Platform: "linkedin",
		ClientID: "team-client-id",
		Scopes:   "custom.scope",
	}

	_, err := f.svc.BeginAuth(context.Background(), 1, "linkedin")
	require.NoError(t, err)

	require.NotNil(t, f.provider.lastCreds)
	assert.Equal(t, "team-client-id", f.provider.lastCreds.ClientID)
	assert.Equal(t, "custom.scope", f.provider.lastCreds.Scopes)
	assert.Equal(t, "client-secret", f.provider.lastCreds.ClientSecret, "env default fills fields the config leaves blank")
}

func TestCallbackStateMismatchSkipsExchange(t *testing.T) {
	f := newConnectionFixture("youtube", nil)

	_, err := f.svc.BeginAuth(context.Background(), 1, "youtube")
	require.NoError(t, err)

	err = f.svc.HandleCallback(context.Background(), 1, 7, "youtube", "code123", "not-the-state", "", "")
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Zero(t, f.provider.exchangeCalls, "exchange must not run on a state mismatch")

	_, ok := f.states.Get(1)
	assert.False(t, ok, "pending state is single use")
}

func TestCallbackPlatformMismatchSkipsExchange(t *testing.T) {
	cfg := &config.Config{
		OAuthDefaults: map[string]config.OAuthClient{
			"youtube":  {ClientID: "yt-id", ClientSecret: "yt-secret"},
			"facebook": {ClientID: "fb-id", ClientSecret: "fb-secret"},
		},
		OAuthRedirectBase: "http://localhost:3000",
		SecretKey:         testSecretKey,
	}
	yt := &stubProvider{key: "youtube"}
	fb := &stubProvider{key: "facebook"}
	states := NewStateStore(10 * time.Minute)
	svc := NewConnectionService(*cfg, providers.Registry{"youtube": yt, "facebook": fb}, states,
		newFakePlatformConfigRepo(), newFakeTokenRepo(), newFakeFeedRepo())

	authURL, err := svc.BeginAuth(context.Background(), 1, "youtube")
	require.NoError(t, err)
	parsed, _ := url.Parse(authURL)
	state := parsed.Query().Get("state")

	err = svc.HandleCallback(context.Background(), 1, 7, "facebook", "code123", state, "", "")
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Zero(t, fb.exchangeCalls)
	assert.Zero(t, yt.exchangeCalls)
}

func TestCallbackProviderErrorAborts(t *testing.T) {
	f := newConnectionFixture("youtube", nil)

	_, err := f.svc.BeginAuth(context.Background(), 1, "youtube")
	require.NoError(t, err)

	err = f.svc.HandleCallback(context.Background(), 1, 7, "youtube", "", "", "access_denied", "The user denied the request")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The user denied the request")
	assert.Zero(t, f.provider.exchangeCalls)

	_, ok := f.states.Get(1)
	assert.False(t, ok, "pending state is cleared on provider error")
}

func TestExchangeAndSaveNormalizesExpiry(t *testing.T) {
	f := newConnectionFixture("youtube", nil)
	f.provider.exchangeResult = &transfer.TokenResult{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	res, err := f.svc.Exchange(context.Background(), 1, "youtube", "code123")
	require.NoError(t, err)

	err = f.svc.SaveToken(context.Background(), 1, 7, "youtube", res)
	require.NoError(t, err)

	token, err := f.tokens.Get(context.Background(), 1, "youtube")
	require.NoError(t, err)
	require.NotNil(t, token)
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *token.ExpiresAt, time.Second)
	assert.Equal(t, int64(7), token.ConnectedBy)

	decrypted, err := utils.Decrypt(token.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "access-token", decrypted)
}

func TestSaveTokenAbsoluteExpiryWins(t *testing.T) {
	f := newConnectionFixture("youtube", nil)
	expiry := time.Now().Add(30 * time.Minute)

	err := f.svc.SaveToken(context.Background(), 1, 7, "youtube", &transfer.TokenResult{
		AccessToken: "access-token",
		ExpiresAt:   expiry,
		ExpiresIn:   3600,
	})
	require.NoError(t, err)

	token, _ := f.tokens.Get(context.Background(), 1, "youtube")
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, expiry, *token.ExpiresAt, time.Second)
}

func TestSaveTokenNonExpiring(t *testing.T) {
	f := newConnectionFixture("facebook", nil)

	err := f.svc.SaveToken(context.Background(), 1, 7, "facebook", &transfer.TokenResult{
		AccessToken: "page-token",
	})
	require.NoError(t, err)

	token, _ := f.tokens.Get(context.Background(), 1, "facebook")
	require.NotNil(t, token)
	assert.Nil(t, token.ExpiresAt, "missing expiry hint means non-expiring")
}

func TestReconnectOverwritesToken(t *testing.T) {
	f := newConnectionFixture("youtube", nil)

	require.NoError(t, f.svc.SaveToken(context.Background(), 1, 7, "youtube", &transfer.TokenResult{
		AccessToken:  "first",
		RefreshToken: "first-refresh",
	}))
	require.NoError(t, f.svc.SaveToken(context.Background(), 1, 8, "youtube", &transfer.TokenResult{
		AccessToken: "second",
	}))

	assert.Len(t, f.tokens.rows, 1, "reconnect must not create a second row")

	token, _ := f.tokens.Get(context.Background(), 1, "youtube")
	decrypted, err := utils.Decrypt(token.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "second", decrypted)
	assert.Empty(t, token.RefreshToken, "replace is total, fields are not merged")
	assert.Equal(t, int64(8), token.ConnectedBy)
}

func TestExchangeMissingCredentials(t *testing.T) {
	cfg := &config.Config{
		OAuthDefaults:     map[string]config.OAuthClient{},
		OAuthRedirectBase: "http://localhost:3000",
		SecretKey:         testSecretKey,
	}
	f := newConnectionFixture("linkedin", cfg)

	_, err := f.svc.Exchange(context.Background(), 1, "linkedin", "code123")
	assert.ErrorIs(t, err, ErrMissingClientCredentials)
	assert.Zero(t, f.provider.exchangeCalls)
}

func TestDisconnectCascadesAndIsIdempotent(t *testing.T) {
	f := newConnectionFixture("facebook", nil)

	require.NoError(t, f.svc.SaveToken(context.Background(), 1, 7, "facebook", &transfer.TokenResult{AccessToken: "tok"}))
	_, err := f.feeds.Create(context.Background(), &models.Feed{TeamID: 1, Platform: "facebook", AccountID: "page-1"})
	require.NoError(t, err)
	_, err = f.feeds.Create(context.Background(), &models.Feed{TeamID: 1, Platform: "facebook", AccountID: "page-2"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Disconnect(context.Background(), 1, "facebook"))

	token, _ := f.tokens.Get(context.Background(), 1, "facebook")
	assert.Nil(t, token)
	feeds, _ := f.feeds.ListByTeamID(context.Background(), 1)
	assert.Empty(t, feeds)

	assert.NoError(t, f.svc.Disconnect(context.Background(), 1, "facebook"), "disconnecting twice is a no-op")
}

func TestDisconnectLeavesOtherTeamsAlone(t *testing.T) {
	f := newConnectionFixture("facebook", nil)

	require.NoError(t, f.svc.SaveToken(context.Background(), 1, 7, "facebook", &transfer.TokenResult{AccessToken: "t1"}))
	require.NoError(t, f.svc.SaveToken(context.Background(), 2, 9, "facebook", &transfer.TokenResult{AccessToken: "t2"}))

	require.NoError(t, f.svc.Disconnect(context.Background(), 1, "facebook"))

	token, _ := f.tokens.Get(context.Background(), 2, "facebook")
	assert.NotNil(t, token, "team 2's connection must survive team 1's disconnect")
}

func TestListConnectionsIsTeamScoped(t *testing.T) {
	f := newConnectionFixture("youtube", nil)

	require.NoError(t, f.svc.SaveToken(context.Background(), 1, 7, "youtube", &transfer.TokenResult{AccessToken: "tok"}))

	mine, err := f.svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "youtube", mine[0].Platform)

	theirs, err := f.svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestBeginAuthUnknownPlatform(t *testing.T) {
	f := newConnectionFixture("youtube", nil)

	_, err := f.svc.BeginAuth(context.Background(), 1, "myspace")
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestRedirectURIDerivedFromBase(t *testing.T) {
	f := newConnectionFixture("instagram", nil)

	_, err := f.svc.BeginAuth(context.Background(), 1, "instagram")
	require.NoError(t, err)

	require.NotNil(t, f.provider.lastCreds)
	assert.True(t, strings.HasSuffix(f.provider.lastCreds.RedirectURI, "/auth/instagram/callback"))
}

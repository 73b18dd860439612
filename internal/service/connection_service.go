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
	"github.com/maheshrc27/feedhub/internal/transfer"
	"github.com/maheshrc27/feedhub/pkg/utils"
)

type ConnectionService interface {
	BeginAuth(ctx context.Context, teamID int64, platform string) (string, error)
	HandleCallback(ctx context.Context, teamID, userID int64, platform, code, state, errCode, errDesc string) error
	Exchange(ctx context.Context, teamID int64, platform, code string) (*transfer.TokenResult, error)
	SaveToken(ctx context.Context, teamID, userID int64, platform string, res *transfer.TokenResult) error
	List(ctx context.Context, teamID int64) ([]*transfer.ConnectionInfo, error)
	Disconnect(ctx context.Context, teamID int64, platform string) error
}

type connectionService struct {
	cfg      config.Config
	registry providers.Registry
	states   StateStore
	pc       repository.PlatformConfigRepository
	tokens   repository.OAuthTokenRepository
	feeds    repository.FeedRepository
}

func NewConnectionService(
	cfg config.Config,
	registry providers.Registry,
	states StateStore,
	pc repository.PlatformConfigRepository,
	tokens repository.OAuthTokenRepository,
	feeds repository.FeedRepository) ConnectionService {
	return &connectionService{
		cfg:      cfg,
		registry: registry,
		states:   states,
		pc:       pc,
		tokens:   tokens,
		feeds:    feeds,
	}
}

func (s *connectionService) BeginAuth(ctx context.Context, teamID int64, platform string) (string, error) {
	prov, ok := s.registry.Get(platform)
	if !ok {
		return "", ErrInvalidPlatform
	}

	creds, err := s.resolveCredentials(ctx, teamID, prov)
	if err != nil {
		return "", err
	}
	if creds.ClientID == "" {
		return "", ErrMissingClientCredentials
	}

	state, err := utils.NewStateToken()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	// One pending authorization per team; a newer begin takes the slot.
	s.states.Put(teamID, state, platform)

	return prov.AuthorizeURL(creds, state), nil
}

func (s *connectionService) HandleCallback(ctx context.Context, teamID, userID int64, platform, code, state, errCode, errDesc string) error {
	pending, ok := s.states.Get(teamID)
	s.states.Clear(teamID)

	if errCode != "" {
		if errDesc == "" {
			errDesc = errCode
		}
		return fmt.Errorf("authorization declined by provider: %s", errDesc)
	}

	if !ok || state == "" || pending.State != state || pending.Platform != platform {
		return ErrStateMismatch
	}

	res, err := s.Exchange(ctx, teamID, platform, code)
	if err != nil {
		return err
	}

	return s.SaveToken(ctx, teamID, userID, platform, res)
}

func (s *connectionService) Exchange(ctx context.Context, teamID int64, platform, code string) (*transfer.TokenResult, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return nil, err
	}

	prov, ok := s.registry.Get(platform)
	if !ok {
		return nil, ErrInvalidPlatform
	}

	creds, err := s.resolveCredentials(ctx, teamID, prov)
	if err != nil {
		return nil, err
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, ErrMissingClientCredentials
	}

	return prov.Exchange(ctx, creds, code)
}

func (s *connectionService) SaveToken(ctx context.Context, teamID, userID int64, platform string, res *transfer.TokenResult) error {
	if res == nil || res.AccessToken == "" {
		err := errors.New("token result carries no access token")
		slog.Info(err.Error())
		return err
	}

	if _, ok := s.registry.Get(platform); !ok {
		return ErrInvalidPlatform
	}

	var expiresAt *time.Time
	if !res.ExpiresAt.IsZero() {
		t := res.ExpiresAt.UTC()
		expiresAt = &t
	} else if res.ExpiresIn > 0 {
		t := time.Now().Add(time.Duration(res.ExpiresIn) * time.Second).UTC()
		expiresAt = &t
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(res.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	var encryptedRefreshToken string
	if res.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(res.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	token := &models.OAuthToken{
		TeamID:       teamID,
		Platform:     platform,
		AccessToken:  encryptedAccessToken,
		RefreshToken: encryptedRefreshToken,
		TokenType:    res.TokenType,
		ExpiresAt:    expiresAt,
		ConnectedBy:  userID,
	}

	return s.tokens.Upsert(ctx, token)
}

func (s *connectionService) List(ctx context.Context, teamID int64) ([]*transfer.ConnectionInfo, error) {
	tokens, err := s.tokens.ListByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("error listing connections")
	}

	connections := make([]*transfer.ConnectionInfo, 0, len(tokens))
	for _, t := range tokens {
		connections = append(connections, &transfer.ConnectionInfo{
			Platform:    t.Platform,
			ConnectedBy: t.ConnectedBy,
			ExpiresAt:   t.ExpiresAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return connections, nil
}

// Disconnect removes the token first: if the feed cleanup fails the leftover
// feeds fail closed with ErrNotConnected on the next refresh.
func (s *connectionService) Disconnect(ctx context.Context, teamID int64, platform string) error {
	if _, ok := s.registry.Get(platform); !ok {
		return ErrInvalidPlatform
	}

	if err := s.tokens.Delete(ctx, teamID, platform); err != nil {
		return fmt.Errorf("error removing token: %w", err)
	}

	if err := s.feeds.RemoveByPlatform(ctx, teamID, platform); err != nil {
		return fmt.Errorf("error removing feeds: %w", err)
	}

	return nil
}

// resolveCredentials layers a team's stored platform config over the adapter
// defaults and environment-level client credentials. The stored config wins
// wherever it sets a field.
func (s *connectionService) resolveCredentials(ctx context.Context, teamID int64, prov providers.Provider) (*providers.ClientCredentials, error) {
	creds := prov.Defaults()
	creds.RedirectURI = fmt.Sprintf("%s/auth/%s/callback", s.cfg.OAuthRedirectBase, prov.Key())

	if def, ok := s.cfg.OAuthDefaults[prov.Key()]; ok {
		creds.ClientID = def.ClientID
		creds.ClientSecret = def.ClientSecret
	}

	row, err := s.pc.GetByTeamPlatform(ctx, teamID, prov.Key())
	if err != nil {
		return nil, err
	}
	if row != nil {
		if row.ClientID != "" {
			creds.ClientID = row.ClientID
		}
		if row.ClientSecret != "" {
			creds.ClientSecret = row.ClientSecret
		}
		if row.AuthURL != "" {
			creds.AuthURL = row.AuthURL
		}
		if row.TokenURL != "" {
			creds.TokenURL = row.TokenURL
		}
		if row.Scopes != "" {
			creds.Scopes = row.Scopes
		}
		if row.RedirectURI != "" {
			creds.RedirectURI = row.RedirectURI
		}
		if len(row.Extras) > 0 {
			creds.Extras = row.Extras
		}
	}

	return &creds, nil
}

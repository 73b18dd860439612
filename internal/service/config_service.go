package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/repository"
	"github.com/maheshrc27/feedhub/internal/transfer"
)

type ConfigService interface {
	Get(ctx context.Context, teamID int64, platform string) (*models.PlatformConfig, error)
	List(ctx context.Context, teamID int64) ([]*models.PlatformConfig, error)
	Save(ctx context.Context, teamID int64, in *transfer.PlatformConfigInput) error
}

type configService struct {
	registry providers.Registry
	pc       repository.PlatformConfigRepository
}

func NewConfigService(registry providers.Registry, pc repository.PlatformConfigRepository) ConfigService {
	return &configService{registry: registry, pc: pc}
}

func (s *configService) Get(ctx context.Context, teamID int64, platform string) (*models.PlatformConfig, error) {
	if _, ok := s.registry.Get(platform); !ok {
		return nil, ErrInvalidPlatform
	}

	pc, err := s.pc.GetByTeamPlatform(ctx, teamID, platform)
	if err != nil {
		return nil, fmt.Errorf("error getting platform config")
	}
	if pc != nil {
		// The secret is write-only; it never goes back to a client.
		pc.ClientSecret = ""
	}
	return pc, nil
}

func (s *configService) List(ctx context.Context, teamID int64) ([]*models.PlatformConfig, error) {
	configs, err := s.pc.ListByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("error listing platform configs")
	}
	for _, pc := range configs {
		pc.ClientSecret = ""
	}
	return configs, nil
}

// Save upserts a team's OAuth app registration. A nil ClientSecret in the
// input keeps the stored secret untouched.
func (s *configService) Save(ctx context.Context, teamID int64, in *transfer.PlatformConfigInput) error {
	if _, ok := s.registry.Get(in.Platform); !ok {
		return ErrInvalidPlatform
	}

	pc := &models.PlatformConfig{
		TeamID:      teamID,
		Platform:    in.Platform,
		ClientID:    in.ClientID,
		AuthURL:     in.AuthURL,
		TokenURL:    in.TokenURL,
		Scopes:      in.Scopes,
		RedirectURI: in.RedirectURI,
		Extras:      in.Extras,
	}

	return s.pc.Upsert(ctx, pc, in.ClientSecret)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/feedhub/internal/models"
)

type PlatformConfigRepository interface {
	GetByTeamPlatform(ctx context.Context, teamID int64, platform string) (*models.PlatformConfig, error)
	ListByTeamID(ctx context.Context, teamID int64) ([]*models.PlatformConfig, error)
	Upsert(ctx context.Context, pc *models.PlatformConfig, secret *string) error
}

type platformConfigRepository struct {
	db *sql.DB
}

func NewPlatformConfigRepository(db *sql.DB) PlatformConfigRepository {
	return &platformConfigRepository{db: db}
}

func (r *platformConfigRepository) GetByTeamPlatform(ctx context.Context, teamID int64, platform string) (*models.PlatformConfig, error) {
	query := `SELECT id, team_id, platform, client_id, client_secret, auth_url, token_url, scopes, redirect_uri, extras, updated_at
		FROM platform_configs WHERE team_id = $1 AND platform = $2`
	row := r.db.QueryRowContext(ctx, query, teamID, platform)

	pc, err := scanPlatformConfig(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return pc, nil
}

func (r *platformConfigRepository) ListByTeamID(ctx context.Context, teamID int64) ([]*models.PlatformConfig, error) {
	query := `SELECT id, team_id, platform, client_id, client_secret, auth_url, token_url, scopes, redirect_uri, extras, updated_at
		FROM platform_configs WHERE team_id = $1 ORDER BY platform`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var configs []*models.PlatformConfig
	for rows.Next() {
		pc, err := scanPlatformConfig(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		configs = append(configs, pc)
	}
	return configs, rows.Err()
}

func (r *platformConfigRepository) Upsert(ctx context.Context, pc *models.PlatformConfig, secret *string) error {
	extras, err := json.Marshal(pc.Extras)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	// A NULL secret keeps whatever is already stored.
	query := `
		INSERT INTO platform_configs (team_id, platform, client_id, client_secret, auth_url, token_url, scopes, redirect_uri, extras, updated_at)
		VALUES ($1, $2, $3, COALESCE($4, ''), $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (team_id, platform) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			client_secret = COALESCE($4, platform_configs.client_secret),
			auth_url = EXCLUDED.auth_url,
			token_url = EXCLUDED.token_url,
			scopes = EXCLUDED.scopes,
			redirect_uri = EXCLUDED.redirect_uri,
			extras = EXCLUDED.extras,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err = r.db.ExecContext(ctx, query,
		pc.TeamID,
		pc.Platform,
		pc.ClientID,
		secret,
		pc.AuthURL,
		pc.TokenURL,
		pc.Scopes,
		pc.RedirectURI,
		string(extras),
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlatformConfig(row rowScanner) (*models.PlatformConfig, error) {
	var pc models.PlatformConfig
	var extras string
	err := row.Scan(&pc.ID, &pc.TeamID, &pc.Platform, &pc.ClientID, &pc.ClientSecret,
		&pc.AuthURL, &pc.TokenURL, &pc.Scopes, &pc.RedirectURI, &extras, &pc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if extras != "" {
		if err := json.Unmarshal([]byte(extras), &pc.Extras); err != nil {
			return nil, err
		}
	}
	return &pc, nil
}

package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/feedhub/internal/models"
)

type OAuthTokenRepository interface {
	Get(ctx context.Context, teamID int64, platform string) (*models.OAuthToken, error)
	ListByTeamID(ctx context.Context, teamID int64) ([]*models.OAuthToken, error)
	Upsert(ctx context.Context, t *models.OAuthToken) error
	Delete(ctx context.Context, teamID int64, platform string) error
}

type oauthTokenRepository struct {
	db *sql.DB
}

func NewOAuthTokenRepository(db *sql.DB) OAuthTokenRepository {
	return &oauthTokenRepository{db: db}
}

func (r *oauthTokenRepository) Get(ctx context.Context, teamID int64, platform string) (*models.OAuthToken, error) {
	query := `SELECT id, team_id, platform, access_token, refresh_token, token_type, expires_at, connected_by, updated_at
		FROM oauth_tokens WHERE team_id = $1 AND platform = $2`
	row := r.db.QueryRowContext(ctx, query, teamID, platform)

	var t models.OAuthToken
	err := row.Scan(&t.ID, &t.TeamID, &t.Platform, &t.AccessToken, &t.RefreshToken,
		&t.TokenType, &t.ExpiresAt, &t.ConnectedBy, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &t, nil
}

func (r *oauthTokenRepository) ListByTeamID(ctx context.Context, teamID int64) ([]*models.OAuthToken, error) {
	query := `SELECT id, team_id, platform, token_type, expires_at, connected_by, updated_at
		FROM oauth_tokens WHERE team_id = $1 ORDER BY platform`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var tokens []*models.OAuthToken
	for rows.Next() {
		var t models.OAuthToken
		err := rows.Scan(&t.ID, &t.TeamID, &t.Platform, &t.TokenType, &t.ExpiresAt, &t.ConnectedBy, &t.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}

// Upsert replaces the whole row on reconnect; fields are never merged.
func (r *oauthTokenRepository) Upsert(ctx context.Context, t *models.OAuthToken) error {
	query := `
		INSERT INTO oauth_tokens (team_id, platform, access_token, refresh_token, token_type, expires_at, connected_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		ON CONFLICT (team_id, platform) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_type = EXCLUDED.token_type,
			expires_at = EXCLUDED.expires_at,
			connected_by = EXCLUDED.connected_by,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		t.TeamID,
		t.Platform,
		t.AccessToken,
		t.RefreshToken,
		t.TokenType,
		t.ExpiresAt,
		t.ConnectedBy,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *oauthTokenRepository) Delete(ctx context.Context, teamID int64, platform string) error {
	query := `DELETE FROM oauth_tokens WHERE team_id = $1 AND platform = $2`
	_, err := r.db.ExecContext(ctx, query, teamID, platform)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/feedhub/internal/models"
)

type FeedRepository interface {
	Create(ctx context.Context, f *models.Feed) (int64, error)
	GetByID(ctx context.Context, teamID, id int64) (*models.Feed, error)
	ListByTeamID(ctx context.Context, teamID int64) ([]*models.Feed, error)
	Remove(ctx context.Context, teamID, id int64) error
	RemoveByPlatform(ctx context.Context, teamID int64, platform string) error
}

type feedRepository struct {
	db *sql.DB
}

func NewFeedRepository(db *sql.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(ctx context.Context, f *models.Feed) (int64, error) {
	query := `
		INSERT INTO feeds (team_id, platform, account_id, label)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, f.TeamID, f.Platform, f.AccountID, f.Label).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *feedRepository) GetByID(ctx context.Context, teamID, id int64) (*models.Feed, error) {
	query := `SELECT id, team_id, platform, account_id, label, created_at FROM feeds WHERE id = $1 AND team_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, teamID)

	var f models.Feed
	err := row.Scan(&f.ID, &f.TeamID, &f.Platform, &f.AccountID, &f.Label, &f.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &f, nil
}

func (r *feedRepository) ListByTeamID(ctx context.Context, teamID int64) ([]*models.Feed, error) {
	query := `SELECT id, team_id, platform, account_id, label, created_at FROM feeds WHERE team_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var feeds []*models.Feed
	for rows.Next() {
		var f models.Feed
		err := rows.Scan(&f.ID, &f.TeamID, &f.Platform, &f.AccountID, &f.Label, &f.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		feeds = append(feeds, &f)
	}
	return feeds, rows.Err()
}

func (r *feedRepository) Remove(ctx context.Context, teamID, id int64) error {
	query := `DELETE FROM feeds WHERE id = $1 AND team_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, teamID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *feedRepository) RemoveByPlatform(ctx context.Context, teamID int64, platform string) error {
	query := `DELETE FROM feeds WHERE team_id = $1 AND platform = $2`
	_, err := r.db.ExecContext(ctx, query, teamID, platform)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

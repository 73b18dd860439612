package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/feedhub/internal/models"
)

type PostCacheRepository interface {
	Upsert(ctx context.Context, teamID int64, platform, accountID string, p *models.NormalizedPost) error
	ListByAccount(ctx context.Context, teamID int64, platform, accountID string, limit int) ([]*models.NormalizedPost, error)
}

type postCacheRepository struct {
	db *sql.DB
}

func NewPostCacheRepository(db *sql.DB) PostCacheRepository {
	return &postCacheRepository{db: db}
}

// Upsert is keyed on (team, platform, account, post); a refetch of the same
// post overwrites the previous row.
func (r *postCacheRepository) Upsert(ctx context.Context, teamID int64, platform, accountID string, p *models.NormalizedPost) error {
	query := `
		INSERT INTO cached_posts (team_id, platform, account_id, post_id, title, description, published_at, permalink, thumbnail_url, like_count, comment_count, raw_payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP)
		ON CONFLICT (team_id, platform, account_id, post_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_at = EXCLUDED.published_at,
			permalink = EXCLUDED.permalink,
			thumbnail_url = EXCLUDED.thumbnail_url,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			raw_payload = EXCLUDED.raw_payload,
			fetched_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		teamID,
		platform,
		accountID,
		p.PostID,
		p.Title,
		p.Description,
		p.PublishedAt,
		p.Permalink,
		p.ThumbnailURL,
		p.LikeCount,
		p.CommentCount,
		p.RawPayload,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postCacheRepository) ListByAccount(ctx context.Context, teamID int64, platform, accountID string, limit int) ([]*models.NormalizedPost, error) {
	query := `SELECT post_id, title, description, published_at, permalink, thumbnail_url, like_count, comment_count, raw_payload
		FROM cached_posts
		WHERE team_id = $1 AND platform = $2 AND account_id = $3
		ORDER BY published_at DESC NULLS LAST
		LIMIT $4`
	rows, err := r.db.QueryContext(ctx, query, teamID, platform, accountID, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.NormalizedPost
	for rows.Next() {
		var p models.NormalizedPost
		err := rows.Scan(&p.PostID, &p.Title, &p.Description, &p.PublishedAt, &p.Permalink,
			&p.ThumbnailURL, &p.LikeCount, &p.CommentCount, &p.RawPayload)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/transfer"
)

const (
	instagramAuthURL  = "https://www.instagram.com/oauth/authorize"
	instagramTokenURL = "https://api.instagram.com/oauth/access_token"
)

type Instagram struct {
	GraphURL   string
	HTTPClient *http.Client
}

func (ig *Instagram) Key() string { return "instagram" }

func (ig *Instagram) Defaults() ClientCredentials {
	return ClientCredentials{
		AuthURL:  instagramAuthURL,
		TokenURL: instagramTokenURL,
		Scopes:   "instagram_business_basic",
	}
}

func (ig *Instagram) AuthorizeURL(creds *ClientCredentials, state string) string {
	return buildAuthorizeURL(creds, state, nil)
}

func (ig *Instagram) Exchange(ctx context.Context, creds *ClientCredentials, code string) (*transfer.TokenResult, error) {
	return exchangeAuthorizationCode(ctx, orDefaultClient(ig.HTTPClient), ig.Key(), creds, code)
}

func (ig *Instagram) FetchPosts(ctx context.Context, accessToken, accountID string, limit int) ([]*models.NormalizedPost, error) {
	base := ig.GraphURL
	if base == "" {
		base = defaultGraphURL
	}

	params := url.Values{}
	params.Set("fields", "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp,like_count,comments_count")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("access_token", accessToken)

	items, err := fetchGraphItems(ctx, orDefaultClient(ig.HTTPClient), ig.Key(), base+"/"+url.PathEscape(accountID)+"/media", params)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.NormalizedPost, 0, len(items))
	for _, item := range items {
		thumbnail := item.ThumbnailURL
		if thumbnail == "" {
			thumbnail = item.MediaURL
		}

		post := &models.NormalizedPost{
			PostID:       item.ID,
			Title:        item.Caption,
			PublishedAt:  parseGraphTime(item.Timestamp),
			Permalink:    item.Permalink,
			ThumbnailURL: thumbnail,
			LikeCount:    item.LikeCount,
			CommentCount: item.CommentCount,
		}
		if raw, err := json.Marshal(item); err == nil {
			post.RawPayload = string(raw)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

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
	facebookAuthURL  = "https://www.facebook.com/v19.0/dialog/oauth"
	facebookTokenURL = defaultGraphURL + "/oauth/access_token"
)

type Facebook struct {
	GraphURL   string
	HTTPClient *http.Client
}

func (f *Facebook) Key() string { return "facebook" }

func (f *Facebook) Defaults() ClientCredentials {
	return ClientCredentials{
		AuthURL:  facebookAuthURL,
		TokenURL: facebookTokenURL,
		Scopes:   "pages_show_list,pages_read_engagement",
	}
}

func (f *Facebook) AuthorizeURL(creds *ClientCredentials, state string) string {
	return buildAuthorizeURL(creds, state, nil)
}

func (f *Facebook) Exchange(ctx context.Context, creds *ClientCredentials, code string) (*transfer.TokenResult, error) {
	return exchangeAuthorizationCode(ctx, orDefaultClient(f.HTTPClient), f.Key(), creds, code)
}

func (f *Facebook) FetchPosts(ctx context.Context, accessToken, accountID string, limit int) ([]*models.NormalizedPost, error) {
	base := f.GraphURL
	if base == "" {
		base = defaultGraphURL
	}

	params := url.Values{}
	params.Set("fields", "id,message,story,created_time,permalink_url,full_picture,likes.summary(true),comments.summary(true)")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("access_token", accessToken)

	items, err := fetchGraphItems(ctx, orDefaultClient(f.HTTPClient), f.Key(), base+"/"+url.PathEscape(accountID)+"/posts", params)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.NormalizedPost, 0, len(items))
	for _, item := range items {
		post := &models.NormalizedPost{
			PostID:       item.ID,
			Title:        item.Message,
			Description:  item.Story,
			PublishedAt:  parseGraphTime(item.CreatedTime),
			Permalink:    item.PermalinkURL,
			ThumbnailURL: item.FullPicture,
		}
		if item.Likes != nil {
			post.LikeCount = item.Likes.Summary.TotalCount
		}
		if item.Comments != nil {
			post.CommentCount = item.Comments.Summary.TotalCount
		}
		if raw, err := json.Marshal(item); err == nil {
			post.RawPayload = string(raw)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/transfer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// Youtube lists a channel's most recent uploads. The API returns only video
// ids, so the watch link is constructed here.
type Youtube struct {
	APIEndpoint string
	HTTPClient  *http.Client
}

func (y *Youtube) Key() string { return "youtube" }

func (y *Youtube) Defaults() ClientCredentials {
	return ClientCredentials{
		AuthURL:  google.Endpoint.AuthURL,
		TokenURL: google.Endpoint.TokenURL,
		Scopes:   "https://www.googleapis.com/auth/youtube.readonly",
	}
}

func (y *Youtube) AuthorizeURL(creds *ClientCredentials, state string) string {
	extra := url.Values{}
	extra.Set("access_type", "offline")
	extra.Set("prompt", "consent")
	return buildAuthorizeURL(creds, state, extra)
}

func (y *Youtube) Exchange(ctx context.Context, creds *ClientCredentials, code string) (*transfer.TokenResult, error) {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       strings.Fields(creds.Scopes),
		Endpoint: oauth2.Endpoint{
			AuthURL:  creds.AuthURL,
			TokenURL: creds.TokenURL,
		},
	}

	if y.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, y.HTTPClient)
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return nil, &TokenExchangeError{
				Platform:    y.Key(),
				StatusCode:  rerr.Response.StatusCode,
				Description: strings.TrimSpace(string(rerr.Body)),
			}
		}
		return nil, err
	}

	return &transfer.TokenResult{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}, nil
}

func (y *Youtube) FetchPosts(ctx context.Context, accessToken, accountID string, limit int) ([]*models.NormalizedPost, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}
	if y.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(y.APIEndpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := service.Search.List([]string{"snippet"}).
		ChannelId(accountID).
		Order("date").
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &FetchError{Platform: y.Key(), StatusCode: gerr.Code, Body: gerr.Message}
		}
		return nil, err
	}

	posts := make([]*models.NormalizedPost, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		post := &models.NormalizedPost{
			PostID:    item.Id.VideoId,
			Permalink: youtubeWatchURL + item.Id.VideoId,
		}

		if item.Snippet != nil {
			post.Title = item.Snippet.Title
			post.Description = item.Snippet.Description
			if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				post.PublishedAt = &t
			}
			if item.Snippet.Thumbnails != nil {
				if item.Snippet.Thumbnails.High != nil {
					post.ThumbnailURL = item.Snippet.Thumbnails.High.Url
				} else if item.Snippet.Thumbnails.Default != nil {
					post.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
				}
			}
		}

		if raw, err := json.Marshal(item); err == nil {
			post.RawPayload = string(raw)
		}

		posts = append(posts, post)
	}

	return posts, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/transfer"
	"golang.org/x/oauth2/endpoints"
)

const (
	defaultLinkedinAPIURL = "https://api.linkedin.com"
	linkedinUpdateURL     = "https://www.linkedin.com/feed/update/"
)

type Linkedin struct {
	APIURL     string
	HTTPClient *http.Client
}

func (l *Linkedin) Key() string { return "linkedin" }

func (l *Linkedin) Defaults() ClientCredentials {
	return ClientCredentials{
		AuthURL:  endpoints.LinkedIn.AuthURL,
		TokenURL: endpoints.LinkedIn.TokenURL,
		Scopes:   "r_organization_social",
	}
}

func (l *Linkedin) AuthorizeURL(creds *ClientCredentials, state string) string {
	return buildAuthorizeURL(creds, state, nil)
}

func (l *Linkedin) Exchange(ctx context.Context, creds *ClientCredentials, code string) (*transfer.TokenResult, error) {
	return exchangeAuthorizationCode(ctx, orDefaultClient(l.HTTPClient), l.Key(), creds, code)
}

func (l *Linkedin) FetchPosts(ctx context.Context, accessToken, accountID string, limit int) ([]*models.NormalizedPost, error) {
	base := l.APIURL
	if base == "" {
		base = defaultLinkedinAPIURL
	}

	author := accountID
	if !strings.HasPrefix(author, "urn:") {
		author = "urn:li:organization:" + accountID
	}

	endpoint := fmt.Sprintf("%s/v2/ugcPosts?q=authors&authors=List(%s)&count=%d", base, url.QueryEscape(author), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := orDefaultClient(l.HTTPClient).Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Platform: l.Key(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var list transfer.LinkedinPostList
	if err := json.Unmarshal(body, &list); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode linkedin response: %w", err)
	}

	posts := make([]*models.NormalizedPost, 0, len(list.Elements))
	for _, el := range list.Elements {
		post := &models.NormalizedPost{
			PostID:    el.ID,
			Title:     el.SpecificContent.ShareContent.ShareCommentary.Text,
			Permalink: linkedinUpdateURL + el.ID + "/",
		}

		if ts := el.FirstPublishedAt; ts > 0 {
			t := time.UnixMilli(ts).UTC()
			post.PublishedAt = &t
		} else if el.Created != nil && el.Created.Time > 0 {
			t := time.UnixMilli(el.Created.Time).UTC()
			post.PublishedAt = &t
		}

		if media := el.SpecificContent.ShareContent.Media; len(media) > 0 {
			post.Description = media[0].Description.Text
			if len(media[0].Thumbnails) > 0 {
				post.ThumbnailURL = media[0].Thumbnails[0].URL
			}
		}

		if raw, err := json.Marshal(el); err == nil {
			post.RawPayload = string(raw)
		}

		posts = append(posts, post)
	}

	return posts, nil
}

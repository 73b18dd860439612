package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/maheshrc27/feedhub/internal/models"
	"github.com/maheshrc27/feedhub/internal/transfer"
)

// ClientCredentials is a team's resolved OAuth client registration for one
// platform, after merging the stored config with environment defaults.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Scopes       string
	RedirectURI  string
	Extras       map[string]string
}

// Provider adapts one platform's authorization and feed endpoints to the
// common contract. Implementations are stateless; per-test endpoint overrides
// live on the concrete structs.
type Provider interface {
	Key() string
	Defaults() ClientCredentials
	AuthorizeURL(creds *ClientCredentials, state string) string
	Exchange(ctx context.Context, creds *ClientCredentials, code string) (*transfer.TokenResult, error)
	FetchPosts(ctx context.Context, accessToken, accountID string, limit int) ([]*models.NormalizedPost, error)
}

type Registry map[string]Provider

func (r Registry) Get(platform string) (Provider, bool) {
	p, ok := r[platform]
	return p, ok
}

func (r Registry) Platforms() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	return keys
}

func DefaultRegistry() Registry {
	return Registry{
		"youtube":   &Youtube{},
		"facebook":  &Facebook{},
		"instagram": &Instagram{},
		"linkedin":  &Linkedin{},
	}
}

func buildAuthorizeURL(creds *ClientCredentials, state string, extra url.Values) string {
	params := url.Values{}
	params.Add("client_id", creds.ClientID)
	params.Add("redirect_uri", creds.RedirectURI)
	params.Add("response_type", "code")
	params.Add("scope", creds.Scopes)
	params.Add("state", state)
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	for k, v := range creds.Extras {
		params.Set(k, v)
	}
	return fmt.Sprintf("%s?%s", creds.AuthURL, params.Encode())
}

func orDefaultClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}

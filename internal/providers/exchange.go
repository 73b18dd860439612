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

	"github.com/maheshrc27/feedhub/internal/transfer"
)

// exchangeAuthorizationCode runs the standard authorization_code grant as one
// form-encoded POST to the platform's token endpoint.
func exchangeAuthorizationCode(ctx context.Context, client *http.Client, platform string, creds *ClientCredentials, code string) (*transfer.TokenResult, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", creds.ClientID)
	data.Set("client_secret", creds.ClientSecret)
	data.Set("redirect_uri", creds.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, creds.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TokenExchangeError{
			Platform:    platform,
			StatusCode:  resp.StatusCode,
			Description: strings.TrimSpace(string(body)),
		}
	}

	var result transfer.TokenResult
	if err := json.Unmarshal(body, &result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if result.AccessToken == "" {
		return nil, &TokenExchangeError{
			Platform:    platform,
			StatusCode:  resp.StatusCode,
			Description: "token response carried no access token",
		}
	}

	return &result, nil
}

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

	"github.com/maheshrc27/feedhub/internal/transfer"
)

const defaultGraphURL = "https://graph.facebook.com/v19.0"

// fetchGraphItems runs one Graph API list call. Facebook and Instagram share
// the API shape; the access token travels as a query parameter, not a header.
func fetchGraphItems(ctx context.Context, client *http.Client, platform, endpoint string, params url.Values) ([]transfer.GraphPost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", endpoint, params.Encode()), nil)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	resp, err := client.Do(req)
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
		msg := strings.TrimSpace(string(body))
		var gerr transfer.GraphErrorResponse
		if err := json.Unmarshal(body, &gerr); err == nil && gerr.Error.Message != "" {
			msg = gerr.Error.Message
		}
		return nil, &FetchError{Platform: platform, StatusCode: resp.StatusCode, Body: msg}
	}

	var list transfer.GraphPostList
	if err := json.Unmarshal(body, &list); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode %s response: %w", platform, err)
	}

	return list.Data, nil
}

// parseGraphTime accepts both Graph timestamp layouts seen in the wild.
func parseGraphTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

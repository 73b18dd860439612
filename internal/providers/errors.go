package providers

import "fmt"

// TokenExchangeError reports a provider rejecting an authorization code. The
// provider's response body is carried verbatim for operator diagnosis.
type TokenExchangeError struct {
	Platform    string
	StatusCode  int
	Description string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("%s token exchange failed (status %d): %s", e.Platform, e.StatusCode, e.Description)
}

// FetchError reports a non-2xx response from a platform's list/search
// endpoint.
type FetchError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s feed fetch failed (status %d): %s", e.Platform, e.StatusCode, e.Body)
}

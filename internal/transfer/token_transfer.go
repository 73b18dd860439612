package transfer

import "time"

// TokenResult is the raw envelope returned by a provider's token endpoint.
// Exactly one of ExpiresAt / ExpiresIn is usually set; both zero means the
// token does not expire.
type TokenResult struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

type ConnectionInfo struct {
	Platform    string     `json:"platform"`
	ConnectedBy int64      `json:"connected_by"`
	ExpiresAt   *time.Time `json:"expires_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

package models

import (
	"time"
)

// OAuthToken is the single live credential for one (team, platform).
// Access and refresh tokens are stored AES-GCM encrypted.
type OAuthToken struct {
	ID           int64      `db:"id" json:"id"`
	TeamID       int64      `db:"team_id" json:"team_id"`
	Platform     string     `db:"platform" json:"platform"`
	AccessToken  string     `db:"access_token" json:"-"`
	RefreshToken string     `db:"refresh_token" json:"-"`
	TokenType    string     `db:"token_type" json:"token_type"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expires_at"`
	ConnectedBy  int64      `db:"connected_by" json:"connected_by"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

package models

import (
	"time"
)

type PlatformConfig struct {
	ID           int64             `db:"id" json:"id"`
	TeamID       int64             `db:"team_id" json:"team_id"`
	Platform     string            `db:"platform" json:"platform"`
	ClientID     string            `db:"client_id" json:"client_id"`
	ClientSecret string            `db:"client_secret" json:"-"`
	AuthURL      string            `db:"auth_url" json:"auth_url"`
	TokenURL     string            `db:"token_url" json:"token_url"`
	Scopes       string            `db:"scopes" json:"scopes"`
	RedirectURI  string            `db:"redirect_uri" json:"redirect_uri"`
	Extras       map[string]string `db:"extras" json:"extras"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

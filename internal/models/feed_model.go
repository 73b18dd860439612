package models

import (
	"time"
)

type Feed struct {
	ID        int64     `db:"id" json:"id"`
	TeamID    int64     `db:"team_id" json:"team_id"`
	Platform  string    `db:"platform" json:"platform"`
	AccountID string    `db:"account_id" json:"account_id"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package service

import "errors"

var (
	ErrInvalidPlatform          = errors.New("unsupported platform")
	ErrMissingClientCredentials = errors.New("no client credentials configured for platform")
	ErrStateMismatch            = errors.New("authorization state mismatch")
	ErrNotConnected             = errors.New("platform is not connected")
	ErrTokenExpired             = errors.New("access token has expired, reconnect the platform")
	ErrFeedNotFound             = errors.New("feed not found")
)

package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewStateToken returns an opaque anti-forgery state string for the
// authorization redirect round trip.
func NewStateToken() (string, error) {
	return gonanoid.New(32)
}

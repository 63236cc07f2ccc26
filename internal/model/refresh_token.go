package model

import "time"

// RefreshToken is the opaque long-lived credential exchanged for a new access token.
// A user holds at most one at a time.
type RefreshToken struct {
	ID         int64
	Token      string
	ExpiryDate time.Time
	UserID     int64
}

// Expired reports whether the token is no longer usable at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiryDate.After(now)
}

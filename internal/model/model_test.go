package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&RefreshToken{ExpiryDate: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&RefreshToken{ExpiryDate: now}).Expired(now))
	assert.True(t, (&RefreshToken{ExpiryDate: now.Add(-time.Hour)}).Expired(now))
}

func TestUser_HasAvatar(t *testing.T) {
	assert.False(t, (&User{}).HasAvatar())
	assert.True(t, (&User{AvatarKey: "avatars/1/a.png"}).HasAvatar())
}

package model

import "time"

// User is a registered forum member.
// PasswordHash never leaves the service layer.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarKey    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasAvatar reports whether an avatar object has been uploaded for the user.
func (u *User) HasAvatar() bool {
	return u.AvatarKey != ""
}

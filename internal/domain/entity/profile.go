package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of a user. Its ID equals the user's ID.
type Profile struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Bio         string
	Website     string
	AvatarURL   string
	CreatedAt   time.Time
}

// Name returns the best label to show for the profile.
func (p *Profile) Name() string {
	if p == nil {
		return ""
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}

	return p.Username
}

// ProfileFallback builds the profile shown for a signed-in user whose profile
// row has not been created yet: the username is the local part of the email.
func ProfileFallback(userID uuid.UUID, email string) *Profile {
	username, _, _ := strings.Cut(email, "@")

	return &Profile{
		ID:       userID,
		Username: username,
	}
}

package repository

import (
	"context"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrProfileNotFound is returned when the store has no profile for the user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileChanges holds the mutable profile fields. Nil fields are left untouched.
type ProfileChanges struct {
	Username    *string
	DisplayName *string
	Bio         *string
	Website     *string
	AvatarURL   *string
}

// IsEmpty reports whether no field is set.
func (c *ProfileChanges) IsEmpty() bool {
	return c == nil || (c.Username == nil && c.DisplayName == nil && c.Bio == nil && c.Website == nil && c.AvatarURL == nil)
}

// ProfileRepository defines the profile operations against the remote store.
type ProfileRepository interface {
	// FindByID returns ErrProfileNotFound when no profile exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// Update applies changes and returns the stored profile. Access control is
	// the store's row-level policy.
	Update(ctx context.Context, id uuid.UUID, changes *ProfileChanges) (*entity.Profile, error)
}

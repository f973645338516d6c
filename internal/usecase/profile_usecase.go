package usecase

import (
	"context"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile returns nil when the user has no profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error)
	// CurrentProfile is the profile of the signed-in user, falling back to
	// one derived from the session email when no profile row exists.
	CurrentProfile(ctx context.Context, session *entity.Session) (*entity.Profile, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines the profile fields to change. Nil fields are kept;
// an empty string clears a nullable field.
type UpdateProfileInput struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Website     *string `json:"website,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

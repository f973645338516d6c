package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/usecase"
	"quill/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileForm carries the validation rules of the editable profile fields.
// Empty optional fields clear the stored value.
type profileForm struct {
	Username    string `form:"username" label:"Username" validate:"min=3,max=30"`
	DisplayName string `form:"display_name" label:"Display name" validate:"omitempty,min=2,max=50"`
	Bio         string `form:"bio" label:"Bio" validate:"max=500"`
	Website     string `form:"website" label:"Website" validate:"omitempty,http_url"`
	AvatarURL   string `form:"avatar_url" label:"Avatar URL" validate:"omitempty,http_url"`
}

// profileService implements the ProfileUsecase interface.
type profileService struct {
	profiles  repository.ProfileRepository
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	profiles repository.ProfileRepository,
	validator *validation.Validator,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		profiles:  profiles,
		validator: validator,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns nil when the user has no profile row.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	srv.log(ctx).Debug("Getting user profile", slog.String("user_id", userID.String()))

	profile, err := srv.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get profile")
	}

	return profile, nil
}

// UpdateProfile validates the present fields and sends only those.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	srv.log(ctx).Info("Updating user profile", slog.String("user_id", userID.String()))

	changes, form, fields := normalizeProfileInput(input)
	if changes.IsEmpty() {
		profile, err := srv.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "profile not found")
		}

		return profile, nil
	}

	if err := srv.validator.StructPartial(form, fields...); err != nil {
		return nil, err
	}

	profile, err := srv.profiles.Update(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return profile, nil
}

// normalizeProfileInput trims the present fields and returns them as store
// changes, a form for validation and the names of the fields to validate.
func normalizeProfileInput(input *usecase.UpdateProfileInput) (*repository.ProfileChanges, *profileForm, []string) {
	changes := &repository.ProfileChanges{}
	form := &profileForm{}
	var fields []string

	if input == nil {
		return changes, form, fields
	}

	take := func(src *string, dst **string, formField *string, name string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		*dst = &v
		*formField = v
		fields = append(fields, name)
	}

	take(input.Username, &changes.Username, &form.Username, "Username")
	take(input.DisplayName, &changes.DisplayName, &form.DisplayName, "DisplayName")
	take(input.Bio, &changes.Bio, &form.Bio, "Bio")
	take(input.Website, &changes.Website, &form.Website, "Website")
	take(input.AvatarURL, &changes.AvatarURL, &form.AvatarURL, "AvatarURL")

	return changes, form, fields
}

// CurrentProfile merges the session user with their profile row. A missing
// row or an unreachable store yields a profile derived from the email.
func (srv *profileService) CurrentProfile(ctx context.Context, session *entity.Session) (*entity.Profile, error) {
	if session == nil {
		return nil, nil
	}

	fallback := entity.ProfileFallback(session.UserID, session.Email)

	profile, err := srv.GetProfile(ctx, session.UserID)
	if err != nil {
		srv.log(ctx).Warn("Profile unavailable, using fallback", slog.Any("error", err))

		return fallback, nil
	}
	if profile == nil {
		return fallback, nil
	}

	if profile.Username == "" {
		profile.Username = fallback.Username
	}

	return profile, nil
}

package graphql

import (
	"context"
	"log/slog"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/infra/graphql"

	"github.com/google/uuid"
)

// profileRepository implements the domain.ProfileRepository interface.
type profileRepository struct {
	transports TransportProvider
	caches     CacheProvider
	logger     *slog.Logger
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(transports TransportProvider, caches CacheProvider, logger *slog.Logger) repository.ProfileRepository {
	return &profileRepository{
		transports: transports,
		caches:     caches,
		logger:     logger,
	}
}

type profilesCollectionData struct {
	ProfilesCollection graphql.Connection[graphql.ProfileNode] `json:"profilesCollection"`
}

// FindByID fetches the profile from the store and refreshes its cached copy.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var data profilesCollectionData
	if err := repo.transports.For(ctx).Execute(ctx, graphql.GetProfile, map[string]any{"id": id.String()}, &data); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to fetch profile")
	}

	profiles := repo.toProfiles(ctx, data.ProfilesCollection.Nodes())
	if len(profiles) == 0 {
		return nil, repository.ErrProfileNotFound
	}

	repo.caches.For(ctx).WriteProfile(profiles[0])

	return profiles[0], nil
}

type updateProfilesData struct {
	Result graphql.Mutation[graphql.ProfileNode] `json:"updateprofilesCollection"`
}

// Update sends only the changed columns. Empty nullable fields are stored as null.
func (repo *profileRepository) Update(ctx context.Context, id uuid.UUID, changes *repository.ProfileChanges) (*entity.Profile, error) {
	vars := map[string]any{
		"id":  id.String(),
		"set": toProfileSet(changes),
	}

	var data updateProfilesData
	if err := repo.transports.For(ctx).Execute(ctx, graphql.UpdateProfile, vars, &data); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to update profile")
	}

	profiles := repo.toProfiles(ctx, data.Result.Records)
	if len(profiles) == 0 {
		return nil, repository.ErrProfileNotFound
	}

	repo.caches.For(ctx).WriteProfile(profiles[0])

	return profiles[0], nil
}

func toProfileSet(changes *repository.ProfileChanges) map[string]any {
	set := make(map[string]any)
	if changes == nil {
		return set
	}

	if changes.Username != nil {
		set["username"] = *changes.Username
	}
	nullable := map[string]*string{
		"display_name": changes.DisplayName,
		"bio":          changes.Bio,
		"website":      changes.Website,
		"avatar_url":   changes.AvatarURL,
	}
	for column, value := range nullable {
		switch {
		case value == nil:
		case *value == "":
			set[column] = nil
		default:
			set[column] = *value
		}
	}

	return set
}

func (repo *profileRepository) toProfiles(ctx context.Context, nodes []graphql.ProfileNode) []*entity.Profile {
	profiles := make([]*entity.Profile, 0, len(nodes))
	for i := range nodes {
		profile, err := nodes[i].ToEntity()
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, repo.logger).Warn("Skipping undecodable profile",
				slog.String("id", nodes[i].ID),
				slog.Any("error", err),
			)

			continue
		}
		profiles = append(profiles, profile)
	}

	return profiles
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"quill/config"
	"quill/internal/domain/entity"
	"quill/internal/domain/repository"
	"quill/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSessionRepository(t *testing.T, secret string) (repository.SessionRepository, func(string) repository.SessionRepository) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Init(context.Background(), db))

	build := func(secret string) repository.SessionRepository {
		cfg := &config.Config{Session: config.SessionConfig{Secret: secret}}
		sealer, err := auth.NewChaChaSealer(cfg)
		require.NoError(t, err)

		return NewSessionRepository(db, sealer)
	}

	return build(secret), build
}

func TestSessionRepository_SaveFindDelete(t *testing.T) {
	repo, _ := createTestSessionRepository(t, "a-long-session-secret")
	ctx := context.Background()

	session := &entity.Session{
		UserID:       uuid.New(),
		Email:        "ada@example.com",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(ctx, "handle-1", session))

	found, err := repo.Find(ctx, "handle-1")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, found.UserID)
	assert.Equal(t, "access-1", found.AccessToken)
	assert.Equal(t, "refresh-1", found.RefreshToken)
	assert.True(t, session.ExpiresAt.Equal(found.ExpiresAt))

	session.AccessToken = "access-2"
	require.NoError(t, repo.Save(ctx, "handle-1", session))
	found, err = repo.Find(ctx, "handle-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", found.AccessToken)

	require.NoError(t, repo.Delete(ctx, "handle-1"))
	_, err = repo.Find(ctx, "handle-1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	require.NoError(t, repo.Delete(ctx, "handle-1"))
}

func TestSessionRepository_TokensAreSealedAtRest(t *testing.T) {
	repo, _ := createTestSessionRepository(t, "a-long-session-secret")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "handle-1", &entity.Session{
		UserID:       uuid.New(),
		AccessToken:  "plain-access",
		RefreshToken: "plain-refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	db := repo.(*sessionRepository).db
	var key, access string
	require.NoError(t, db.QueryRow(`SELECT storage_key, access_token FROM browser_sessions`).Scan(&key, &access))
	assert.NotEqual(t, "handle-1", key)
	assert.NotContains(t, access, "plain-access")
}

func TestSessionRepository_OtherSecretCannotRead(t *testing.T) {
	repo, build := createTestSessionRepository(t, "a-long-session-secret")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "handle-1", &entity.Session{
		UserID:      uuid.New(),
		AccessToken: "access",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	_, err := build("another-secret").Find(ctx, "handle-1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

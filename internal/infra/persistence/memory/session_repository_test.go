package memory

import (
	"context"
	"testing"

	"quill/internal/domain/entity"
	"quill/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_StoresCopies(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()
	session := &entity.Session{UserID: uuid.New(), AccessToken: "a"}

	require.NoError(t, repo.Save(ctx, "h1", session))
	session.AccessToken = "mutated"

	found, err := repo.Find(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "a", found.AccessToken)

	found.AccessToken = "mutated too"
	again, err := repo.Find(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "a", again.AccessToken)

	require.NoError(t, repo.Delete(ctx, "h1"))
	_, err = repo.Find(ctx, "h1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

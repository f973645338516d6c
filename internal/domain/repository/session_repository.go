package repository

import (
	"context"

	"quill/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when no session is stored for a browser context.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists the session of each browser context so that a
// restart does not sign everybody out.
type SessionRepository interface {
	// Save stores the session for handle, replacing any previous one.
	Save(ctx context.Context, handle string, session *entity.Session) error

	// Find returns ErrSessionNotFound when nothing is stored for handle.
	Find(ctx context.Context, handle string) (*entity.Session, error)

	// Delete removes the session for handle. Missing sessions are ignored.
	Delete(ctx context.Context, handle string) error
}

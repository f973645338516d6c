// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"quill/internal/domain/entity"
	"quill/internal/domain/service"
)

// SessionUsecase is the session store: it holds the current session of every
// browser context, keeps it fresh and tells subscribers when it changes.
type SessionUsecase interface {
	service.SessionSource

	// Load resolves the session of a browser context seen for the first time
	// since start-up from the session backend. Later calls return the known session.
	Load(ctx context.Context, handle string) *entity.Session
	// Refresh re-validates the session with the identity provider. It never
	// returns an error; on failure the context is marked expired.
	Refresh(ctx context.Context, handle string) bool
	SignOut(ctx context.Context, handle string) error
	// Establish stores a session obtained by sign-in.
	Establish(ctx context.Context, handle string, session *entity.Session)
	// Notify applies an auth-state notification to the context.
	Notify(ctx context.Context, handle string, event entity.AuthEvent, session *entity.Session)
	State(handle string) entity.AuthState
	IsExpired(handle string) bool
	// ValidateUser re-validates the identity of the context for a protected request.
	ValidateUser(ctx context.Context, handle string) (*entity.Session, error)
	Close()
}

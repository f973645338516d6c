// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
)

// IdentityUser is the user record the identity provider returns.
type IdentityUser struct {
	ID    uuid.UUID
	Email string
}

// IdentityProvider abstracts the hosted identity service: OTP delivery, OAuth
// code exchange and session refresh.
type IdentityProvider interface {
	// SendOTP asks the provider to email a one-time sign-in link that lands on
	// redirectTo. The link carries a code bound to codeChallenge (PKCE S256).
	SendOTP(ctx context.Context, email, redirectTo, codeChallenge string) error

	// AuthorizeURL builds the OAuth authorize URL for provider with a PKCE S256 challenge.
	AuthorizeURL(provider, redirectTo, codeChallenge string) string

	// ExchangeCode trades a one-time authorization code for a session.
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*entity.Session, error)

	// Refresh uses a refresh token to obtain a new session.
	Refresh(ctx context.Context, refreshToken string) (*entity.Session, error)

	// GetUser validates accessToken remotely and returns its user.
	GetUser(ctx context.Context, accessToken string) (*IdentityUser, error)

	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, accessToken string) error
}

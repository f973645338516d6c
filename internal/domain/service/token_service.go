package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims are the fields quill reads from a provider access token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService reads and verifies provider access tokens.
type TokenService interface {
	// CanVerify reports whether tokens can be verified locally, either with a
	// shared signing secret or against the provider's published keys.
	CanVerify() bool

	// Verify checks the signature and expiry of token.
	Verify(ctx context.Context, token string) (*Claims, error)
}

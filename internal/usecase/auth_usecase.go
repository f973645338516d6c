package usecase

import (
	"context"
)

// CallbackPath is where the identity provider sends the browser back to.
const CallbackPath = "/auth/callback"

// AuthUsecase defines the sign-in flows against the identity provider.
type AuthUsecase interface {
	// SendMagicLink emails a sign-in link. The returned PKCE verifier must be
	// presented when the link's code is exchanged.
	SendMagicLink(ctx context.Context, input *MagicLinkInput) (verifier string, err error)
	// OAuthURL returns the provider authorize URL and the PKCE verifier to keep for the callback.
	OAuthURL(ctx context.Context, input *OAuthInput) (authURL, verifier string, err error)
	// ExchangeCodeForSession trades a callback code for a session of handle and
	// returns where the browser goes next.
	ExchangeCodeForSession(ctx context.Context, handle string, input *ExchangeInput) (target string, err error)
}

// --- Input DTOs ---

// MagicLinkInput defines the data required to request a magic link.
type MagicLinkInput struct {
	Email      string `form:"email" label:"Email" validate:"required,email"`
	RedirectTo string `form:"redirectTo"`
	// Origin is the scheme and host the request came in on. It is used for
	// the callback URL when no site URL is configured.
	Origin string `form:"-"`
}

// OAuthInput defines the data required to start an OAuth sign-in.
type OAuthInput struct {
	Provider   string `form:"provider" label:"Provider" validate:"required,alphanum,max=32"`
	RedirectTo string `form:"redirectTo"`
	Origin     string `form:"-"`
}

// ExchangeInput is what the callback received.
type ExchangeInput struct {
	Code       string
	Verifier   string
	RedirectTo string
}

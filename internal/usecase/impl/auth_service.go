package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/service"
	"quill/internal/usecase"
	"quill/internal/util"
	"quill/internal/validation"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
)

const defaultRedirect = "/"

// authService implements the AuthUsecase interface.
type authService struct {
	identity  service.IdentityProvider
	sessions  usecase.SessionUsecase
	validator *validation.Validator
	siteURL   string
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Identity  service.IdentityProvider
	Sessions  usecase.SessionUsecase
	Validator *validation.Validator
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		identity:  params.Identity,
		sessions:  params.Sessions,
		validator: params.Validator,
		siteURL:   params.Config.Supabase.SiteURL,
		logger:    params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendMagicLink validates the address and asks the provider to email a
// sign-in link bound to a fresh PKCE verifier.
func (srv *authService) SendMagicLink(ctx context.Context, input *usecase.MagicLinkInput) (string, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := srv.validator.Struct(input); err != nil {
		return "", err
	}

	callback, err := srv.callbackURL(input.Origin, input.RedirectTo)
	if err != nil {
		return "", err
	}

	verifier := oauth2.GenerateVerifier()
	if err := srv.identity.SendOTP(ctx, input.Email, callback, oauth2.S256ChallengeFromVerifier(verifier)); err != nil {
		// The provider's reason may reveal whether the address is registered.
		srv.log(ctx).Warn("Magic link request rejected", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrAuth, "send otp")
	}

	srv.log(ctx).Info("Magic link sent")

	return verifier, nil
}

// OAuthURL builds the provider authorize URL with a PKCE S256 challenge.
func (srv *authService) OAuthURL(ctx context.Context, input *usecase.OAuthInput) (string, string, error) {
	input.Provider = strings.ToLower(strings.TrimSpace(input.Provider))
	if err := srv.validator.Struct(input); err != nil {
		return "", "", err
	}

	callback, err := srv.callbackURL(input.Origin, input.RedirectTo)
	if err != nil {
		return "", "", err
	}

	verifier := oauth2.GenerateVerifier()
	authURL := srv.identity.AuthorizeURL(input.Provider, callback, oauth2.S256ChallengeFromVerifier(verifier))

	srv.log(ctx).Debug("OAuth sign-in started", slog.String("provider", input.Provider))

	return authURL, verifier, nil
}

// ExchangeCodeForSession trades the callback code for a session of handle
// and returns the local path to continue to.
func (srv *authService) ExchangeCodeForSession(ctx context.Context, handle string, input *usecase.ExchangeInput) (string, error) {
	if input.Code == "" {
		return "", errors.Wrap(domainerrors.ErrExchange, "missing code")
	}
	if input.Verifier == "" {
		return "", errors.Wrap(domainerrors.ErrExchange, "missing code verifier")
	}

	session, err := srv.identity.ExchangeCode(ctx, input.Code, input.Verifier)
	if err != nil {
		srv.log(ctx).Warn("Code exchange failed", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrExchange, "exchange code")
	}
	if session == nil {
		return "", errors.Wrap(domainerrors.ErrExchange, "provider returned no session")
	}

	srv.sessions.Establish(ctx, handle, session)
	srv.log(ctx).Info("User signed in", slog.String("user_id", session.UserID.String()))

	return util.SafeRedirect(input.RedirectTo, defaultRedirect), nil
}

// callbackURL is the absolute callback address, carrying redirectTo when it
// is a local path.
func (srv *authService) callbackURL(origin, redirectTo string) (string, error) {
	base := srv.siteURL
	if base == "" {
		base = origin
	}
	if base == "" {
		return "", errors.New("no site URL configured and no request origin")
	}

	u, err := url.Parse(util.JoinURL(base, usecase.CallbackPath))
	if err != nil {
		return "", errors.Wrap(err, "parse callback url")
	}

	if target := util.SafeRedirect(redirectTo, ""); target != "" && target != defaultRedirect {
		q := u.Query()
		q.Set("redirectTo", target)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

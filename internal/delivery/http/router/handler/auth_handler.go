package handler

import (
	"log/slog"
	"net/http"
	"time"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/view"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/usecase"
	"quill/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// verifierCookie keeps the PKCE verifier between the sign-in request and the callback.
	verifierCookie    = "quill_pkce"
	verifierCookieAge = time.Hour

	loginErrorAuthentication = "authentication-error"
)

var loginErrorMessages = map[string]string{
	loginErrorAuthentication: "Authentication failed. Please try again.",
	"session-expired":        "Your session has expired. Please log in again.",
	"unauthorized":           "You need to log in to access this page.",
}

const loginErrorDefault = "An error occurred. Please try again."

// AuthHandler serves the sign-in pages and the identity provider callback.
type AuthHandler struct {
	auth      usecase.AuthUsecase
	sessions  usecase.SessionUsecase
	pages     *Pages
	providers []string
	secure    bool
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(
	auth usecase.AuthUsecase,
	sessions usecase.SessionUsecase,
	pages *Pages,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		sessions:  sessions,
		pages:     pages,
		providers: cfg.Supabase.OAuthProviders,
		secure:    cfg.Session.Secure,
		logger:    logger,
	}
}

// LoginPage shows the sign-in form. A signed-in visitor goes straight to redirectTo.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	redirectTo := util.SafeRedirect(c.QueryParam("redirectTo"), "")

	if deliverycontext.GetSession(c) != nil {
		return c.Redirect(http.StatusFound, util.SafeRedirect(redirectTo, "/"))
	}

	page := h.pages.New(c, "Login", view.LoginData{
		RedirectTo: redirectTo,
		Providers:  h.providers,
	})

	if code := c.QueryParam("error"); code != "" {
		page.Notice = loginErrorDefault
		if msg, ok := loginErrorMessages[code]; ok {
			page.Notice = msg
		}
		// The notice already says it.
		page.Expired = false
	}

	return h.pages.Render(c, http.StatusOK, view.PageLogin, page)
}

// SendMagicLink emails a sign-in link and remembers its PKCE verifier.
func (h *AuthHandler) SendMagicLink(c echo.Context) error {
	var input usecase.MagicLinkInput
	if err := c.Bind(&input); err != nil {
		return errors.Wrap(domainerrors.ErrValidation, "bind magic link form")
	}
	input.Origin = origin(c)
	input.RedirectTo = util.SafeRedirect(input.RedirectTo, "")

	data := view.LoginData{
		Email:      input.Email,
		RedirectTo: input.RedirectTo,
		Providers:  h.providers,
	}

	verifier, err := h.auth.SendMagicLink(c.Request().Context(), &input)
	if err != nil {
		if fields := validationErrors(err); fields != nil {
			data.Errors = fields

			return h.pages.Render(c, http.StatusUnprocessableEntity, view.PageLogin, h.pages.New(c, "Login", data))
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && errors.Is(err, domainerrors.ErrAuth) {
			data.Errors = map[string]string{"form": appErr.Message()}

			return h.pages.Render(c, http.StatusOK, view.PageLogin, h.pages.New(c, "Login", data))
		}

		return err
	}

	h.setVerifier(c, verifier)
	data.Sent = true

	return h.pages.Render(c, http.StatusOK, view.PageLogin, h.pages.New(c, "Login", data))
}

// OAuthStart sends the browser to the provider's authorize page.
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	input := usecase.OAuthInput{
		Provider:   c.Param("provider"),
		RedirectTo: util.SafeRedirect(c.QueryParam("redirectTo"), ""),
		Origin:     origin(c),
	}

	authURL, verifier, err := h.auth.OAuthURL(c.Request().Context(), &input)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Warn("OAuth sign-in refused", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/login?error="+loginErrorAuthentication)
	}

	h.setVerifier(c, verifier)

	return c.Redirect(http.StatusFound, authURL)
}

// Callback exchanges the code the provider sent back for a session. Without
// a code the provider is never called.
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		if reason := c.QueryParam("error_description"); reason != "" {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Warn("Provider returned an error", slog.String("reason", reason))

			return c.Redirect(http.StatusFound, "/login?error="+loginErrorAuthentication)
		}

		return c.Redirect(http.StatusFound, "/login")
	}

	var verifier string
	if cookie, err := c.Cookie(verifierCookie); err == nil {
		verifier = cookie.Value
	}
	h.clearVerifier(c)

	target, err := h.auth.ExchangeCodeForSession(c.Request().Context(), deliverycontext.GetHandle(c), &usecase.ExchangeInput{
		Code:       code,
		Verifier:   verifier,
		RedirectTo: c.QueryParam("redirectTo"),
	})
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Warn("Sign-in callback failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/login?error="+loginErrorAuthentication)
	}

	return c.Redirect(http.StatusFound, target)
}

// Logout signs the browser context out and goes home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.SignOut(c.Request().Context(), deliverycontext.GetHandle(c)); err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Warn("Sign out failed", slog.Any("error", err))
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) setVerifier(c echo.Context, verifier string) {
	c.SetCookie(&http.Cookie{
		Name:     verifierCookie,
		Value:    verifier,
		Path:     usecase.CallbackPath,
		MaxAge:   int(verifierCookieAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearVerifier(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     verifierCookie,
		Path:     usecase.CallbackPath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

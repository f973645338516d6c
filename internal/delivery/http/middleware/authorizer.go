package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LoginPath is where unauthenticated visitors of protected pages are sent.
const LoginPath = "/login"

// ProtectedPrefixes are the path prefixes that require a valid session.
var ProtectedPrefixes = []string{"/create-post", "/posts/edit", "/profile"}

// Authorizer gates protected pages. Every protected request re-validates the
// session of its browser context.
type Authorizer struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewAuthorizer is the constructor for Authorizer.
func NewAuthorizer(sessions usecase.SessionUsecase, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle redirects to the login page, carrying the original path, when a
// protected path has no valid session. Other requests pass through unchanged.
func (m *Authorizer) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if !IsProtectedPath(path) {
			return next(c)
		}

		ctx := c.Request().Context()
		session, err := m.sessions.ValidateUser(ctx, deliverycontext.GetHandle(c))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Info("Protected page requires sign-in",
				slog.String("path", path),
				slog.Any("reason", err),
			)

			return c.Redirect(http.StatusFound, LoginRedirect(c.Request().URL.Path))
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// IsProtectedPath reports whether path needs a session. Static assets never do.
func IsProtectedPath(path string) bool {
	if IsStaticPath(path) {
		return false
	}

	for _, prefix := range ProtectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	return false
}

// LoginRedirect is the login URL that returns to target after sign-in.
func LoginRedirect(target string) string {
	return LoginPath + "?redirectTo=" + url.QueryEscape(target)
}

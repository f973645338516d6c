package middleware

import (
	"net/http"
	"regexp"
	"time"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const browserContextMaxAge = 400 * 24 * time.Hour

// BrowserContextMiddleware gives every visitor a browser-context handle kept
// in an HTTP-only cookie and resolves the session that belongs to it.
type BrowserContextMiddleware struct {
	sessions   usecase.SessionUsecase
	cookieName string
	secure     bool
}

// NewBrowserContextMiddleware is the constructor for BrowserContextMiddleware.
func NewBrowserContextMiddleware(sessions usecase.SessionUsecase, cfg *config.Config) *BrowserContextMiddleware {
	return &BrowserContextMiddleware{
		sessions:   sessions,
		cookieName: cfg.Session.CookieName,
		secure:     cfg.Session.Secure,
	}
}

// Handle sets the handle on the request and, when the browser has a session,
// stores it for the views. Static assets skip the lookup.
func (m *BrowserContextMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IsStaticPath(c.Request().URL.Path) {
			return next(c)
		}

		handle := m.handle(c)
		deliverycontext.SetHandle(c, handle)

		if session := m.sessions.Load(c.Request().Context(), handle); session != nil {
			deliverycontext.SetSession(c, session)
		}

		return next(c)
	}
}

func (m *BrowserContextMiddleware) handle(c echo.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	handle := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    handle,
		Path:     "/",
		MaxAge:   int(browserContextMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return handle
}

// staticPattern matches paths that never need a session.
var staticPattern = regexp.MustCompile(`^/(static/|favicon\.ico$)|\.(svg|png|jpg|jpeg|gif|webp)$`)

// IsStaticPath reports whether path is a static asset.
func IsStaticPath(path string) bool {
	return staticPattern.MatchString(path)
}

// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/response"
	"quill/internal/delivery/http/view"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// Pages builds the data every template shares.
type Pages struct {
	sessions usecase.SessionUsecase
	profiles usecase.ProfileUsecase
	logger   *slog.Logger
}

// NewPages is the constructor for Pages, injected by Fx.
func NewPages(sessions usecase.SessionUsecase, profiles usecase.ProfileUsecase, logger *slog.Logger) *Pages {
	return &Pages{
		sessions: sessions,
		profiles: profiles,
		logger:   logger,
	}
}

// New returns a page titled title carrying data, the CSRF token and the
// signed-in user's profile.
func (p *Pages) New(c echo.Context, title string, data any) *view.Page {
	page := &view.Page{
		Title: title,
		Data:  data,
	}
	page.CSRF, _ = c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)

	ctx := c.Request().Context()
	if session := deliverycontext.GetSession(c); session != nil {
		profile, err := p.profiles.CurrentProfile(ctx, session)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, p.logger).Warn("Current profile unavailable", slog.Any("error", err))
		}
		page.User = profile
	} else if handle := deliverycontext.GetHandle(c); handle != "" {
		page.Expired = p.sessions.IsExpired(handle)
	}

	return page
}

// Render writes page as the response.
func (p *Pages) Render(c echo.Context, code int, name string, page *view.Page) error {
	return errors.WithStack(c.Render(code, name, page))
}

// requireSession returns the session of the request or ErrUnauthenticated.
func requireSession(c echo.Context) (uuid.UUID, error) {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no session")
	}

	return session.UserID, nil
}

// validationErrors returns the field messages of err, or nil when err is not
// a validation error.
func validationErrors(err error) map[string]string {
	var verr *domainerrors.ValidationError
	if errors.As(err, &verr) {
		return verr.ByField()
	}

	return nil
}

// postIDParam is the :id path parameter of post routes.
type postIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

// parsePostID reads the post id from the path. A malformed id is not found.
func parsePostID(c echo.Context) (uuid.UUID, error) {
	var param postIDParam
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &param); err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrNotFound, "bind post id")
	}
	if err := c.Validate(&param); err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrNotFound, "invalid post id")
	}

	id, err := uuid.Parse(param.ID)
	if err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrNotFound, "invalid post id")
	}

	return id, nil
}

// origin is the scheme and host the request came in on.
func origin(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

// HealthCheck reports that the server is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/response"
	"quill/internal/delivery/http/view"
	domainerrors "quill/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// ErrorMiddleware renders errors as HTML pages
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Only the user
// message of an error is rendered; details go to the log.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if errors.Is(err, domainerrors.ErrUnauthenticated) {
		_ = c.Redirect(http.StatusFound, LoginRedirect(c.Request().URL.Path))

		return
	}

	code, errorCode, message := m.classify(err)
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)

		return
	}

	if wantsJSON(c.Request()) {
		_ = response.Error(c, code, errorCode, message)

		return
	}

	page := &view.Page{
		Title: http.StatusText(code),
		Data:  view.ErrorData{Code: code, Message: message},
	}
	page.CSRF, _ = c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)

	if renderErr := c.Render(code, view.PageError, page); renderErr != nil {
		logger.Error("Failed to render error page", slog.Any("error", renderErr))
		_ = c.String(code, message)
	}
}

func (m *ErrorMiddleware) classify(err error) (int, string, string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && httpErr.Code < http.StatusInternalServerError {
			message = msg
		}

		return httpErr.Code, "HTTP_ERROR", message
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again later."
}

// wantsJSON reports whether the client asked for JSON rather than a page.
func wantsJSON(req *http.Request) bool {
	accept := req.Header.Get(echo.HeaderAccept)

	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}

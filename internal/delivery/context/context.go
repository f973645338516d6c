package context

import (
	"context"
	"log/slog"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyHandle is the key for the browser-context handle.
	KeyHandle ContextKey = "browser_handle"

	// KeySession is the key for the session resolved by the authorizer.
	KeySession ContextKey = "session"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from context.Context.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// WithHandle returns a new context carrying the browser-context handle.
func WithHandle(ctx context.Context, handle string) context.Context {
	return context.WithValue(ctx, KeyHandle, handle)
}

// HandleFrom returns the browser-context handle, or "" outside a browser request.
func HandleFrom(ctx context.Context) string {
	handle, _ := ctx.Value(KeyHandle).(string)

	return handle
}

// GetHandle returns the browser-context handle stored on echo.Context.
func GetHandle(c echo.Context) string {
	if handle, ok := c.Get(string(KeyHandle)).(string); ok {
		return handle
	}

	return HandleFrom(c.Request().Context())
}

// SetHandle stores the browser-context handle on both echo.Context and the request context.
func SetHandle(c echo.Context, handle string) {
	c.Set(string(KeyHandle), handle)
	c.SetRequest(c.Request().WithContext(WithHandle(c.Request().Context(), handle)))
}

// SetSession stores the session of an authenticated request.
func SetSession(c echo.Context, session *entity.Session) {
	c.Set(string(KeySession), session)
}

// GetSession returns the session stored by the authorizer, or nil.
func GetSession(c echo.Context) *entity.Session {
	session, _ := c.Get(string(KeySession)).(*entity.Session)

	return session
}

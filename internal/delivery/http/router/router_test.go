package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_MagicLinkLimiter(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.MagicLinksPerMinute = 2

	r := NewRouter(RouterParams{Config: cfg})
	e := echo.New()
	next := r.magicLinkLimiter()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func() error {
		req := httptest.NewRequest(http.MethodPost, "/login/magic-link", nil)
		rec := httptest.NewRecorder()

		return next(e.NewContext(req, rec))
	}

	require.NoError(t, send())
	require.NoError(t, send())

	err := send()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

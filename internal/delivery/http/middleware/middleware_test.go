package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/view"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	mockUsecase "quill/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passed records whether the next handler ran and what session it saw.
type passed struct {
	called  bool
	session *entity.Session
}

func (p *passed) next(c echo.Context) error {
	p.called = true
	p.session = deliverycontext.GetSession(c)

	return c.String(http.StatusOK, "ok")
}

func serve(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetHandle(c, "h1")

	require.NoError(t, mw(next)(c))

	return rec
}

func TestAuthorizer_ProtectedWithoutSessionRedirects(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	authorizer := NewAuthorizer(sessions, newDiscardLogger())

	sessions.EXPECT().
		ValidateUser(mock.Anything, "h1").
		Return(nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no session")).
		Once()

	var p passed
	rec := serve(t, authorizer.Handle, httptest.NewRequest(http.MethodGet, "/create-post", nil), p.next)

	assert.False(t, p.called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirectTo=%2Fcreate-post", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthorizer_RedirectCarriesPathOnly(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	authorizer := NewAuthorizer(sessions, newDiscardLogger())

	sessions.EXPECT().ValidateUser(mock.Anything, "h1").Return(nil, domainerrors.ErrUnauthenticated).Once()

	var p passed
	rec := serve(t, authorizer.Handle, httptest.NewRequest(http.MethodGet, "/posts/edit/42?x=1", nil), p.next)

	assert.Equal(t, "/login?redirectTo=%2Fposts%2Fedit%2F42", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthorizer_ProtectedWithSessionPassesThrough(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	authorizer := NewAuthorizer(sessions, newDiscardLogger())
	session := &entity.Session{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}

	sessions.EXPECT().ValidateUser(mock.Anything, "h1").Return(session, nil).Once()

	var p passed
	rec := serve(t, authorizer.Handle, httptest.NewRequest(http.MethodGet, "/profile", nil), p.next)

	assert.True(t, p.called)
	assert.Equal(t, session, p.session)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizer_PublicAndStaticPathsAreNotValidated(t *testing.T) {
	for _, path := range []string{"/", "/posts/abc", "/login", "/profile-pictures", "/profile/avatar.png", "/static/app.css", "/favicon.ico"} {
		t.Run(path, func(t *testing.T) {
			sessions := mockUsecase.NewMockSessionUsecase(t)
			authorizer := NewAuthorizer(sessions, newDiscardLogger())

			var p passed
			rec := serve(t, authorizer.Handle, httptest.NewRequest(http.MethodGet, path, nil), p.next)

			assert.True(t, p.called)
			assert.Equal(t, http.StatusOK, rec.Code)
			sessions.AssertNotCalled(t, "ValidateUser", mock.Anything, mock.Anything)
		})
	}
}

func TestIsProtectedPath(t *testing.T) {
	tests := map[string]bool{
		"/create-post":        true,
		"/posts/edit/1":       true,
		"/posts/edit":         true,
		"/profile":            true,
		"/profile/posts/more": true,
		"/posts/1":            false,
		"/create-posts":       false,
		"/":                   false,
		"/profile/me.jpg":     false,
	}

	for path, want := range tests {
		assert.Equal(t, want, IsProtectedPath(path), path)
	}
}

func newBrowserContext(sessions *mockUsecase.MockSessionUsecase) *BrowserContextMiddleware {
	cfg := &config.Config{}
	cfg.Session.CookieName = "quill_ctx"

	return NewBrowserContextMiddleware(sessions, cfg)
}

func TestBrowserContext_NewVisitorGetsHandle(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	mw := newBrowserContext(sessions)

	var loaded string
	sessions.EXPECT().Load(mock.Anything, mock.AnythingOfType("string")).
		Run(func(_ context.Context, handle string) { loaded = handle }).
		Return(nil).
		Once()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var p passed
	require.NoError(t, mw.Handle(p.next)(c))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "quill_ctx", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, loaded, cookies[0].Value)
	assert.Equal(t, loaded, deliverycontext.HandleFrom(c.Request().Context()))
	assert.Nil(t, p.session)
}

func TestBrowserContext_KnownHandleLoadsSession(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	mw := newBrowserContext(sessions)
	handle := uuid.NewString()
	session := &entity.Session{UserID: uuid.New()}

	sessions.EXPECT().Load(mock.Anything, handle).Return(session).Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "quill_ctx", Value: handle})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var p passed
	require.NoError(t, mw.Handle(p.next)(c))

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, session, p.session)
	assert.Equal(t, handle, deliverycontext.GetHandle(c))
}

func TestBrowserContext_ForgedHandleIsReplaced(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	mw := newBrowserContext(sessions)

	sessions.EXPECT().Load(mock.Anything, mock.MatchedBy(func(h string) bool { return h != "../../etc" })).Return(nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "quill_ctx", Value: "../../etc"})
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var p passed
	require.NoError(t, mw.Handle(p.next)(c))
	assert.True(t, p.called)
}

func TestBrowserContext_StaticSkipsLookup(t *testing.T) {
	sessions := mockUsecase.NewMockSessionUsecase(t)
	mw := newBrowserContext(sessions)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/static/logo.svg", nil), httptest.NewRecorder())

	var p passed
	require.NoError(t, mw.Handle(p.next)(c))
	assert.True(t, p.called)
	sessions.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

// recordingRenderer captures what the error handler renders.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := io.WriteString(w, name)

	return err
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "not found", err: errors.Wrap(domainerrors.ErrNotFound, "post"), wantCode: http.StatusNotFound, wantMsg: domainerrors.ErrNotFound.Message()},
		{name: "not owner", err: domainerrors.ErrAuthorization, wantCode: http.StatusForbidden, wantMsg: domainerrors.ErrAuthorization.Message()},
		{name: "store", err: domainerrors.NewStoreExecuteError(errors.New("dial tcp"), "list"), wantCode: http.StatusBadGateway, wantMsg: domainerrors.ErrStore.Message()},
		{name: "echo", err: echo.NewHTTPError(http.StatusForbidden, "invalid csrf token"), wantCode: http.StatusForbidden, wantMsg: "invalid csrf token"},
		{name: "unknown", err: errors.New("boom: secret detail"), wantCode: http.StatusInternalServerError, wantMsg: "Something went wrong. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &recordingRenderer{}
			e := echo.New()
			e.Renderer = renderer
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/posts/1", nil), rec)

			NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			require.NotNil(t, renderer.data)
			page := renderer.data.(*view.Page)
			assert.Equal(t, view.ErrorData{Code: tt.wantCode, Message: tt.wantMsg}, page.Data)
		})
	}
}

func TestErrorMiddleware_UnauthenticatedRedirectsToLogin(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/posts/1/delete", nil), rec)

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(errors.Wrap(domainerrors.ErrUnauthenticated, "no session"), c)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirectTo=%2Fposts%2F1%2Fdelete", rec.Header().Get(echo.HeaderLocation))
}

func TestErrorMiddleware_JSONClients(t *testing.T) {
	e := echo.New()
	e.Renderer = &recordingRenderer{}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(errors.Wrap(domainerrors.ErrNotFound, "post"), e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), domainerrors.ErrNotFound.ErrorCode())
}

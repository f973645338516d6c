package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	mockRepo "quill/internal/mocks/repository"
	mockService "quill/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTimer struct {
	delay   time.Duration
	fire    func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true

	return wasActive
}

// trigger runs the callback the way an expiring timer would.
func (t *fakeTimer) trigger() {
	t.stopped = true
	t.fire()
}

// fakeClock records timers instead of scheduling them.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{delay: d, fire: f}
	c.timers = append(c.timers, t)

	return t
}

func (c *fakeClock) active() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}

	return out
}

// sessionServiceFixtures holds all test dependencies for session store tests.
type sessionServiceFixtures struct {
	service  *sessionService
	repo     *mockRepo.MockSessionRepository
	identity *mockService.MockIdentityProvider
	tokens   *mockService.MockTokenService
	clock    *fakeClock
	events   *[]entity.SessionChanged
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	repo := mockRepo.NewMockSessionRepository(t)
	identity := mockService.NewMockIdentityProvider(t)
	tokens := mockService.NewMockTokenService(t)
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	srv := newSessionService(repo, identity, tokens, newDiscardLogger(), clock.Now, clock.AfterFunc)

	var (
		mu     sync.Mutex
		events []entity.SessionChanged
	)
	srv.Subscribe(func(ev entity.SessionChanged) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	return sessionServiceFixtures{
		service:  srv,
		repo:     repo,
		identity: identity,
		tokens:   tokens,
		clock:    clock,
		events:   &events,
	}
}

func testSession(userID uuid.UUID, token string, expiresAt time.Time) *entity.Session {
	return &entity.Session{
		UserID:       userID,
		Email:        "ada@example.com",
		AccessToken:  "access-" + token,
		RefreshToken: "refresh-" + token,
		ExpiresAt:    expiresAt,
	}
}

func TestSessionService_Establish_PersistsAndArmsTimer(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()
	session := testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour))

	fx.repo.EXPECT().Save(ctx, "h1", session).Return(nil).Once()

	fx.service.Establish(ctx, "h1", session)

	assert.Equal(t, session, fx.service.GetSession("h1"))
	assert.Equal(t, entity.AuthStateAuthenticated, fx.service.State("h1"))
	assert.False(t, fx.service.IsExpired("h1"))

	timers := fx.clock.active()
	require.Len(t, timers, 1)
	assert.Equal(t, 55*time.Minute, timers[0].delay)

	require.Len(t, *fx.events, 1)
	assert.Equal(t, "h1", (*fx.events)[0].Handle)
	assert.Equal(t, session.AccessToken, (*fx.events)[0].Session.AccessToken)
}

func TestSessionService_GetSession_ReturnsCopy(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil)
	fx.service.Establish(ctx, "h1", testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour)))

	got := fx.service.GetSession("h1")
	got.AccessToken = "tampered"

	assert.Equal(t, "access-1", fx.service.GetSession("h1").AccessToken)
	assert.Nil(t, fx.service.GetSession("unknown"))
}

func TestSessionService_NearExpiry_RefreshesOnceAndRearms(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()
	nearExpiry := testSession(userID, "1", fx.clock.now.Add(2*time.Minute))
	refreshed := testSession(userID, "2", fx.clock.now.Add(time.Hour))

	fx.repo.EXPECT().Save(mock.Anything, "h1", mock.Anything).Return(nil).Times(2)
	fx.identity.EXPECT().Refresh(mock.Anything, "refresh-1").Return(refreshed, nil).Once()

	fx.service.Establish(ctx, "h1", nearExpiry)

	timers := fx.clock.active()
	require.Len(t, timers, 1)
	assert.Equal(t, time.Duration(0), timers[0].delay, "inside the window the timer fires immediately")

	first := timers[0]
	first.trigger()

	assert.Equal(t, "access-2", fx.service.GetSession("h1").AccessToken)
	assert.Equal(t, entity.AuthStateAuthenticated, fx.service.State("h1"))

	timers = fx.clock.active()
	require.Len(t, timers, 1, "refresh re-arms exactly one timer")
	assert.Equal(t, 55*time.Minute, timers[0].delay)

	// A late callback of the replaced timer must not refresh again.
	first.trigger()
	assert.Len(t, fx.clock.active(), 1)
}

func TestSessionService_Refresh_FailureMarksExpired(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil)
	fx.repo.EXPECT().Delete(ctx, "h1").Return(nil).Once()
	fx.identity.EXPECT().Refresh(ctx, "refresh-1").Return(nil, errors.New("invalid refresh token")).Once()

	fx.service.Establish(ctx, "h1", testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour)))

	ok := fx.service.Refresh(ctx, "h1")

	assert.False(t, ok)
	assert.True(t, fx.service.IsExpired("h1"))
	assert.Nil(t, fx.service.GetSession("h1"))
	assert.Equal(t, entity.AuthStateUnauthenticated, fx.service.State("h1"))
	assert.Empty(t, fx.clock.active())

	events := *fx.events
	require.Len(t, events, 2)
	assert.Nil(t, events[1].Session)
}

func TestSessionService_IdleContextIsNotRefreshedInBackground(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil).Once()

	fx.service.Establish(ctx, "h1", testSession(userID, "1", fx.clock.now.Add(2*time.Hour)))

	timers := fx.clock.active()
	require.Len(t, timers, 1)

	fx.clock.advance(fx.service.idleTimeout + time.Minute)
	timers[0].trigger()

	fx.identity.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	assert.Empty(t, fx.clock.active())
	assert.Equal(t, "access-1", fx.service.GetSession("h1").AccessToken)
}

func TestSessionService_SignOut_DropsEntry(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil).Once()
	fx.repo.EXPECT().Delete(ctx, "h1").Return(nil).Once()
	fx.identity.EXPECT().SignOut(ctx, "access-1").Return(nil).Once()

	fx.service.Establish(ctx, "h1", testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour)))
	require.NoError(t, fx.service.SignOut(ctx, "h1"))

	assert.Empty(t, fx.service.entries)
	assert.Equal(t, entity.AuthStateUnauthenticated, fx.service.State("h1"))
	assert.Nil(t, fx.service.Load(ctx, "h1"), "a signed-out context is not looked up again")
}

func TestSessionService_Refresh_WithoutSession(t *testing.T) {
	fx := createTestSessionService(t)

	assert.False(t, fx.service.Refresh(context.Background(), "nobody"))
}

func TestSessionService_Refresh_ConcurrentCallersShareOneCall(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	entered := make(chan struct{})
	release := make(chan struct{})

	fx.repo.EXPECT().Save(mock.Anything, "h1", mock.Anything).Return(nil)
	fx.identity.EXPECT().
		Refresh(mock.Anything, "refresh-1").
		RunAndReturn(func(context.Context, string) (*entity.Session, error) {
			close(entered)
			<-release

			return testSession(userID, "2", fx.clock.Now().Add(time.Hour)), nil
		}).
		Once()

	fx.service.Establish(ctx, "h1", testSession(userID, "1", fx.clock.now.Add(time.Hour)))

	results := make(chan bool, 2)
	go func() { results <- fx.service.Refresh(ctx, "h1") }()
	<-entered
	go func() { results <- fx.service.Refresh(ctx, "h1") }()

	// Give the second caller time to find the refresh in flight.
	time.Sleep(50 * time.Millisecond)
	close(release)

	assert.True(t, <-results)
	assert.True(t, <-results)
	assert.Equal(t, "access-2", fx.service.GetSession("h1").AccessToken)
}

func TestSessionService_Load(t *testing.T) {
	t.Run("restores a stored session once", func(t *testing.T) {
		fx := createTestSessionService(t)
		ctx := context.Background()
		stored := testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour))

		fx.repo.EXPECT().Find(ctx, "h1").Return(stored, nil).Once()

		assert.Equal(t, stored, fx.service.Load(ctx, "h1"))
		assert.Equal(t, stored, fx.service.Load(ctx, "h1"))
		assert.Equal(t, entity.AuthStateAuthenticated, fx.service.State("h1"))
		assert.Len(t, fx.clock.active(), 1)
	})

	t.Run("nothing stored", func(t *testing.T) {
		fx := createTestSessionService(t)
		ctx := context.Background()

		fx.repo.EXPECT().Find(ctx, "h1").Return(nil, repository.ErrSessionNotFound).Once()

		assert.Nil(t, fx.service.Load(ctx, "h1"))
		assert.Nil(t, fx.service.Load(ctx, "h1"))
		assert.Equal(t, entity.AuthStateUnauthenticated, fx.service.State("h1"))
		assert.Empty(t, *fx.events)
	})

	t.Run("backend failure is treated as signed out and retried", func(t *testing.T) {
		fx := createTestSessionService(t)
		ctx := context.Background()

		fx.repo.EXPECT().Find(ctx, "h1").Return(nil, errors.New("connection refused")).Once()
		fx.repo.EXPECT().Find(ctx, "h1").Return(nil, repository.ErrSessionNotFound).Once()

		assert.Nil(t, fx.service.Load(ctx, "h1"))
		assert.Equal(t, entity.AuthStateUnknown, fx.service.State("h1"))

		assert.Nil(t, fx.service.Load(ctx, "h1"))
		assert.Equal(t, entity.AuthStateUnauthenticated, fx.service.State("h1"))
	})

	t.Run("signed-out contexts keep no entry", func(t *testing.T) {
		fx := createTestSessionService(t)
		ctx := context.Background()
		fx.service.signedOut.Resize(100)

		fx.repo.EXPECT().Find(ctx, mock.Anything).Return(nil, repository.ErrSessionNotFound)

		for range 1000 {
			assert.Nil(t, fx.service.Load(ctx, uuid.NewString()))
		}

		assert.Empty(t, fx.service.entries)
		assert.Equal(t, 100, fx.service.signedOut.Len())
	})

	t.Run("session that lapsed while idle is refreshed on the next request", func(t *testing.T) {
		fx := createTestSessionService(t)
		ctx := context.Background()
		userID := uuid.New()
		refreshed := testSession(userID, "2", fx.clock.now.Add(3*time.Hour))

		fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil).Times(2)
		fx.identity.EXPECT().Refresh(ctx, "refresh-1").Return(refreshed, nil).Once()

		fx.service.Establish(ctx, "h1", testSession(userID, "1", fx.clock.now.Add(time.Hour)))
		fx.clock.advance(2 * time.Hour)

		got := fx.service.Load(ctx, "h1")
		require.NotNil(t, got)
		assert.Equal(t, "access-2", got.AccessToken)
	})

	t.Run("expired stored session is refreshed", func(t *testing.T) {
		fx := createTestSessionService(t)
		ctx := context.Background()
		userID := uuid.New()
		stored := testSession(userID, "1", fx.clock.now.Add(-time.Minute))
		refreshed := testSession(userID, "2", fx.clock.now.Add(time.Hour))

		fx.repo.EXPECT().Find(ctx, "h1").Return(stored, nil).Once()
		fx.identity.EXPECT().Refresh(ctx, "refresh-1").Return(refreshed, nil).Once()
		fx.repo.EXPECT().Save(ctx, "h1", refreshed).Return(nil).Once()

		got := fx.service.Load(ctx, "h1")
		require.NotNil(t, got)
		assert.Equal(t, "access-2", got.AccessToken)
	})

	t.Run("empty handle", func(t *testing.T) {
		fx := createTestSessionService(t)

		assert.Nil(t, fx.service.Load(context.Background(), ""))
	})
}

func TestSessionService_SignOut(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil)
	fx.repo.EXPECT().Delete(ctx, "h1").Return(nil).Once()
	fx.identity.EXPECT().SignOut(ctx, "access-1").Return(errors.New("provider down")).Once()

	fx.service.Establish(ctx, "h1", testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour)))

	require.NoError(t, fx.service.SignOut(ctx, "h1"))
	assert.Nil(t, fx.service.GetSession("h1"))
	assert.False(t, fx.service.IsExpired("h1"))
	assert.Empty(t, fx.clock.active())
}

func TestSessionService_Notify(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil).Times(2)
	fx.repo.EXPECT().Delete(ctx, "h1").Return(nil).Once()

	fx.service.Notify(ctx, "h1", entity.AuthEventSignedIn, testSession(userID, "1", fx.clock.now.Add(time.Hour)))
	fx.service.Notify(ctx, "h1", entity.AuthEventUserUpdated, testSession(userID, "2", fx.clock.now.Add(time.Hour)))
	assert.Equal(t, "access-2", fx.service.GetSession("h1").AccessToken)
	assert.Len(t, fx.clock.active(), 1)

	fx.service.Notify(ctx, "h1", entity.AuthEventSignedOut, nil)
	assert.Nil(t, fx.service.GetSession("h1"))
	assert.Len(t, *fx.events, 3)
}

func TestSessionService_Subscribe_Unsubscribe(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := fx.service.Subscribe(func(entity.SessionChanged) { calls++ })
	unsubscribe()

	fx.repo.EXPECT().Save(ctx, "h1", mock.Anything).Return(nil)
	fx.service.Establish(ctx, "h1", testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour)))

	assert.Zero(t, calls)
}

func TestSessionService_ValidateUser(t *testing.T) {
	userID := uuid.New()

	establish := func(t *testing.T, fx sessionServiceFixtures) {
		t.Helper()
		fx.repo.EXPECT().Save(mock.Anything, "h1", mock.Anything).Return(nil)
		fx.service.Establish(context.Background(), "h1", testSession(userID, "1", fx.clock.now.Add(time.Hour)))
	}

	t.Run("no session", func(t *testing.T) {
		fx := createTestSessionService(t)
		fx.repo.EXPECT().Find(mock.Anything, "h1").Return(nil, repository.ErrSessionNotFound)

		_, err := fx.service.ValidateUser(context.Background(), "h1")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})

	t.Run("verified locally", func(t *testing.T) {
		fx := createTestSessionService(t)
		establish(t, fx)
		fx.tokens.EXPECT().CanVerify().Return(true)
		fx.tokens.EXPECT().Verify(mock.Anything, "access-1").Return(&service.Claims{UserID: userID}, nil).Once()

		session, err := fx.service.ValidateUser(context.Background(), "h1")
		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
	})

	t.Run("local verification fails", func(t *testing.T) {
		fx := createTestSessionService(t)
		establish(t, fx)
		fx.tokens.EXPECT().CanVerify().Return(true)
		fx.tokens.EXPECT().Verify(mock.Anything, "access-1").Return(nil, errors.New("signature is invalid"))

		_, err := fx.service.ValidateUser(context.Background(), "h1")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		fx := createTestSessionService(t)
		establish(t, fx)
		fx.tokens.EXPECT().CanVerify().Return(true)
		fx.tokens.EXPECT().Verify(mock.Anything, "access-1").Return(&service.Claims{UserID: uuid.New()}, nil)

		_, err := fx.service.ValidateUser(context.Background(), "h1")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})

	t.Run("provider lookup", func(t *testing.T) {
		fx := createTestSessionService(t)
		establish(t, fx)
		fx.tokens.EXPECT().CanVerify().Return(false)
		fx.identity.EXPECT().GetUser(mock.Anything, "access-1").Return(&service.IdentityUser{ID: userID}, nil).Once()

		_, err := fx.service.ValidateUser(context.Background(), "h1")
		require.NoError(t, err)
	})

	t.Run("provider rejects", func(t *testing.T) {
		fx := createTestSessionService(t)
		establish(t, fx)
		fx.tokens.EXPECT().CanVerify().Return(false)
		fx.identity.EXPECT().GetUser(mock.Anything, "access-1").Return(nil, errors.New("401"))

		_, err := fx.service.ValidateUser(context.Background(), "h1")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}

func TestSessionService_Close_StopsTimers(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()

	fx.repo.EXPECT().Save(ctx, mock.Anything, mock.Anything).Return(nil)
	fx.service.Establish(ctx, "h1", testSession(uuid.New(), "1", fx.clock.now.Add(time.Hour)))
	fx.service.Establish(ctx, "h2", testSession(uuid.New(), "2", fx.clock.now.Add(time.Hour)))

	timers := fx.clock.active()
	require.Len(t, timers, 2)

	fx.service.Close()
	assert.Empty(t, fx.clock.active())

	// Fired after shutdown: no refresh call is expected on the identity mock.
	timers[0].trigger()
}

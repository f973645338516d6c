// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	deliverycontext "quill/internal/delivery/context"
	"quill/config"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/usecase"
	"quill/internal/util"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	timerRefreshTimeout = 15 * time.Second

	defaultIdleTimeout  = time.Hour
	defaultMaxSignedOut = 10000
)

// stopper is the part of *time.Timer the session store needs.
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// sessionEntry is the state of one browser context.
type sessionEntry struct {
	session *entity.Session
	state   entity.AuthState

	// generation changes on every replacement of session; timers and
	// in-flight refreshes of an older generation are ignored.
	generation uint64
	timer      stopper

	// lastSeen is the time of the last request of the context. Timers stop
	// refreshing once the context has been idle longer than the idle timeout.
	lastSeen time.Time

	loading    chan struct{}
	refreshing chan struct{}
}

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	repo     repository.SessionRepository
	identity service.IdentityProvider
	tokens   service.TokenService
	logger   *slog.Logger
	now      func() time.Time
	after    afterFunc

	idleTimeout time.Duration

	mu      sync.Mutex
	entries map[string]*sessionEntry

	// signedOut remembers contexts without a session, bounded, so anonymous
	// traffic does not grow entries. The value is the expired flag.
	signedOut *lru.Cache[string, bool]

	listeners    map[uint64]func(entity.SessionChanged)
	nextListener uint64
	closed       bool
}

// SessionServiceParams holds dependencies for the session store, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Repo      repository.SessionRepository
	Identity  service.IdentityProvider
	Tokens    service.TokenService
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	srv := newSessionService(params.Repo, params.Identity, params.Tokens, params.Logger, time.Now, realAfterFunc)
	if idle := params.Config.Session.IdleTimeout; idle > 0 {
		srv.idleTimeout = idle
	}
	if size := params.Config.Session.MaxSignedOutContexts; size > 0 {
		srv.signedOut.Resize(size)
	}
	params.Lifecycle.Append(fx.StopHook(srv.Close))

	return srv
}

func newSessionService(
	repo repository.SessionRepository,
	identity service.IdentityProvider,
	tokens service.TokenService,
	logger *slog.Logger,
	now func() time.Time,
	after afterFunc,
) *sessionService {
	signedOut, _ := lru.New[string, bool](defaultMaxSignedOut)

	return &sessionService{
		repo:        repo,
		identity:    identity,
		tokens:      tokens,
		logger:      logger,
		now:         now,
		after:       after,
		idleTimeout: defaultIdleTimeout,
		entries:     make(map[string]*sessionEntry),
		signedOut:   signedOut,
		listeners:   make(map[uint64]func(entity.SessionChanged)),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSession returns a copy of the current session of handle.
func (srv *sessionService) GetSession(handle string) *entity.Session {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if e, ok := srv.entries[handle]; ok {
		return e.session.Clone()
	}

	return nil
}

// Subscribe registers fn for session changes.
func (srv *sessionService) Subscribe(fn func(entity.SessionChanged)) func() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	id := srv.nextListener
	srv.nextListener++
	srv.listeners[id] = fn

	return func() {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		delete(srv.listeners, id)
	}
}

// State returns the lifecycle state of handle.
func (srv *sessionService) State(handle string) entity.AuthState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if e, ok := srv.entries[handle]; ok {
		return e.state
	}
	if srv.signedOut.Contains(handle) {
		return entity.AuthStateUnauthenticated
	}

	return entity.AuthStateUnknown
}

// IsExpired reports whether the last refresh of handle failed.
func (srv *sessionService) IsExpired(handle string) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, ok := srv.entries[handle]; ok {
		return false
	}
	expired, _ := srv.signedOut.Peek(handle)

	return expired
}

// Load resolves the session of handle from the session backend the first
// time the context is seen. Concurrent first requests share one lookup. A
// session that lapsed while the context was idle is refreshed here.
func (srv *sessionService) Load(ctx context.Context, handle string) *entity.Session {
	if handle == "" {
		return nil
	}

	srv.mu.Lock()
	if e, ok := srv.entries[handle]; ok {
		e.lastSeen = srv.now()
		wait := e.loading
		srv.mu.Unlock()
		if wait != nil {
			select {
			case <-wait:
			case <-ctx.Done():
				return nil
			}
		}

		if session := srv.GetSession(handle); session != nil && session.IsExpired(srv.now()) {
			srv.Refresh(ctx, handle)
		}

		return srv.GetSession(handle)
	}
	if srv.signedOut.Contains(handle) {
		srv.mu.Unlock()

		return nil
	}

	e := &sessionEntry{state: entity.AuthStateLoading, loading: make(chan struct{}), lastSeen: srv.now()}
	srv.entries[handle] = e
	srv.mu.Unlock()

	stored, err := srv.repo.Find(ctx, handle)
	failed := err != nil && !errors.Is(err, repository.ErrSessionNotFound)
	if failed {
		srv.log(ctx).Warn("Failed to load session, continuing signed out", slog.Any("error", err))
	}

	srv.mu.Lock()
	close(e.loading)
	e.loading = nil
	if e.generation != 0 {
		// A sign-in or sign-out won the race with the lookup.
		srv.mu.Unlock()

		return srv.GetSession(handle)
	}
	if stored == nil {
		if srv.entries[handle] == e {
			delete(srv.entries, handle)
		}
		// A failed lookup is retried on the next request.
		if !failed {
			srv.signedOut.Add(handle, false)
		}
		srv.mu.Unlock()

		return nil
	}
	srv.mu.Unlock()

	srv.setSession(ctx, handle, stored, entity.AuthEventSignedIn, false)
	if stored.IsExpired(srv.now()) {
		srv.Refresh(ctx, handle)
	}

	return srv.GetSession(handle)
}

// Establish stores a session obtained by sign-in.
func (srv *sessionService) Establish(ctx context.Context, handle string, session *entity.Session) {
	srv.Notify(ctx, handle, entity.AuthEventSignedIn, session)
}

// Notify applies an auth-state notification to handle.
func (srv *sessionService) Notify(ctx context.Context, handle string, event entity.AuthEvent, session *entity.Session) {
	if handle == "" {
		return
	}

	switch event {
	case entity.AuthEventSignedIn, entity.AuthEventTokenRefreshed, entity.AuthEventUserUpdated:
		if session != nil {
			srv.setSession(ctx, handle, session, event, true)

			return
		}
		srv.clearSession(ctx, handle, event, false)
	case entity.AuthEventSignedOut:
		srv.clearSession(ctx, handle, event, false)
	default:
		srv.log(ctx).Warn("Ignoring unknown auth event", slog.String("event", string(event)))
	}
}

// setSession replaces the session of handle, persists it when persist is
// set, re-arms the refresh timer and notifies subscribers.
func (srv *sessionService) setSession(ctx context.Context, handle string, session *entity.Session, event entity.AuthEvent, persist bool) {
	session = session.Clone()

	srv.mu.Lock()
	if srv.closed {
		srv.mu.Unlock()

		return
	}
	e := srv.entryLocked(handle)
	e.session = session
	e.state = entity.AuthStateAuthenticated
	e.generation++
	srv.armTimerLocked(handle, e)
	listeners := srv.listenersLocked()
	srv.mu.Unlock()

	srv.log(ctx).Debug("Session updated",
		slog.String("event", string(event)),
		slog.String("user_id", session.UserID.String()),
		slog.String("refresh_in", util.FormatDuration(session.RefreshDue(srv.now()))),
	)

	if persist {
		if err := srv.repo.Save(ctx, handle, session); err != nil {
			srv.log(ctx).Error("Failed to persist session", slog.Any("error", err))
		}
	}

	srv.emit(listeners, entity.SessionChanged{Handle: handle, Session: session.Clone()})
}

// clearSession drops the session of handle. expired marks a failed refresh.
func (srv *sessionService) clearSession(ctx context.Context, handle string, event entity.AuthEvent, expired bool) {
	srv.mu.Lock()
	had := false
	if e, ok := srv.entries[handle]; ok {
		had = e.session != nil
		e.session = nil
		e.state = entity.AuthStateUnauthenticated
		e.generation++
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
		delete(srv.entries, handle)
	}
	srv.signedOut.Add(handle, expired)
	listeners := srv.listenersLocked()
	srv.mu.Unlock()

	srv.log(ctx).Debug("Session cleared", slog.String("event", string(event)), slog.Bool("expired", expired))

	if err := srv.repo.Delete(ctx, handle); err != nil {
		srv.log(ctx).Error("Failed to delete persisted session", slog.Any("error", err))
	}

	if had {
		srv.emit(listeners, entity.SessionChanged{Handle: handle})
	}
}

func (srv *sessionService) entryLocked(handle string) *sessionEntry {
	e, ok := srv.entries[handle]
	if !ok {
		e = &sessionEntry{state: entity.AuthStateUnknown, lastSeen: srv.now()}
		srv.entries[handle] = e
	}
	srv.signedOut.Remove(handle)

	return e
}

// armTimerLocked replaces the refresh timer of e with one firing at
// ExpiresAt minus the leeway, or right away when that moment has passed.
func (srv *sessionService) armTimerLocked(handle string, e *sessionEntry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.session == nil || e.session.RefreshToken == "" {
		return
	}

	delay := e.session.RefreshDue(srv.now())
	if delay < 0 {
		delay = 0
	}

	generation := e.generation
	e.timer = srv.after(delay, func() { srv.onTimer(handle, generation) })
}

func (srv *sessionService) onTimer(handle string, generation uint64) {
	srv.mu.Lock()
	e, ok := srv.entries[handle]
	stale := srv.closed || !ok || e.generation != generation
	idle := false
	if !stale {
		e.timer = nil
		idle = srv.now().Sub(e.lastSeen) > srv.idleTimeout
	}
	srv.mu.Unlock()

	if stale {
		return
	}
	if idle {
		// The next request of the context refreshes on demand.
		srv.logger.Debug("Context idle, background refresh stopped", slog.String("handle", handle))

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timerRefreshTimeout)
	defer cancel()

	srv.Refresh(ctx, handle)
}

func (srv *sessionService) listenersLocked() []func(entity.SessionChanged) {
	ids := make([]uint64, 0, len(srv.listeners))
	for id := range srv.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(entity.SessionChanged), 0, len(ids))
	for _, id := range ids {
		out = append(out, srv.listeners[id])
	}

	return out
}

func (srv *sessionService) emit(listeners []func(entity.SessionChanged), ev entity.SessionChanged) {
	for _, fn := range listeners {
		fn(ev)
	}
}

// Refresh trades the refresh token of handle for a new session. Concurrent
// callers share one provider call. It never returns an error: on failure the
// session is cleared and the context is marked expired.
func (srv *sessionService) Refresh(ctx context.Context, handle string) bool {
	srv.mu.Lock()
	e, ok := srv.entries[handle]
	if !ok || e.session == nil {
		srv.mu.Unlock()

		return false
	}
	if wait := e.refreshing; wait != nil {
		srv.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return false
		}

		return srv.hasLiveSession(handle)
	}

	refreshToken := e.session.RefreshToken
	generation := e.generation
	done := make(chan struct{})
	e.refreshing = done
	e.state = entity.AuthStateExpiring
	srv.mu.Unlock()

	var (
		next *entity.Session
		err  error
	)
	if refreshToken == "" {
		err = errors.New("session has no refresh token")
	} else {
		next, err = srv.identity.Refresh(ctx, refreshToken)
		if err == nil && next == nil {
			err = errors.New("provider returned no session")
		}
	}

	srv.mu.Lock()
	e.refreshing = nil
	close(done)
	superseded := e.generation != generation
	srv.mu.Unlock()

	if superseded {
		// Signed in or out while the provider call ran; that result stands.
		return srv.hasLiveSession(handle)
	}

	if err != nil {
		srv.log(ctx).Warn("Session refresh failed", slog.Any("error", err))
		srv.clearSession(ctx, handle, entity.AuthEventSignedOut, true)

		return false
	}

	srv.setSession(ctx, handle, next, entity.AuthEventTokenRefreshed, true)

	return true
}

func (srv *sessionService) hasLiveSession(handle string) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	e, ok := srv.entries[handle]

	return ok && e.session != nil
}

// SignOut revokes the session remotely, best effort, and clears it locally.
func (srv *sessionService) SignOut(ctx context.Context, handle string) error {
	session := srv.GetSession(handle)
	if session != nil && session.AccessToken != "" {
		if err := srv.identity.SignOut(ctx, session.AccessToken); err != nil {
			srv.log(ctx).Warn("Remote sign-out failed", slog.Any("error", err))
		}
	}

	srv.clearSession(ctx, handle, entity.AuthEventSignedOut, false)

	return nil
}

// ValidateUser re-validates the identity of handle for a protected request:
// locally against the signing keys when possible, otherwise with the provider.
func (srv *sessionService) ValidateUser(ctx context.Context, handle string) (*entity.Session, error) {
	session := srv.Load(ctx, handle)
	if session == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if session.IsExpired(srv.now()) {
		if !srv.Refresh(ctx, handle) {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "session expired")
		}
		session = srv.GetSession(handle)
		if session == nil {
			return nil, domainerrors.ErrUnauthenticated
		}
	}

	if srv.tokens.CanVerify() {
		claims, err := srv.tokens.Verify(ctx, session.AccessToken)
		if err != nil {
			srv.log(ctx).Info("Access token rejected", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "invalid access token")
		}
		if claims.UserID != session.UserID {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token subject mismatch")
		}

		return session, nil
	}

	user, err := srv.identity.GetUser(ctx, session.AccessToken)
	if err != nil {
		srv.log(ctx).Info("Provider rejected access token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "invalid access token")
	}
	if user.ID != session.UserID {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token subject mismatch")
	}

	return session, nil
}

// Close stops every refresh timer. Later timer callbacks are ignored.
func (srv *sessionService) Close() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.closed = true
	for _, e := range srv.entries {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
	}
}

package graphql

import (
	"context"
	"log/slog"
	"sync"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	"quill/internal/domain/service"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/fx"
)

type cacheScope struct {
	userID uuid.UUID
	cache  *Cache
}

// CacheRegistry keeps one cache scope per browser context. A scope belongs to
// the user it was created for; it is dropped when that session ends or a
// different user signs in on the same browser.
type CacheRegistry struct {
	sessions    service.SessionSource
	logger      *slog.Logger
	unsubscribe func()

	// mu serializes the lookup-then-replace in ForHandle.
	mu     sync.Mutex
	scopes *lru.Cache[string, *cacheScope]
}

// CacheRegistryParams defines the parameters required for the registry.
type CacheRegistryParams struct {
	fx.In

	Config    *config.Config
	Sessions  service.SessionSource
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// NewCacheRegistry creates the registry and subscribes it to session changes.
func NewCacheRegistry(params CacheRegistryParams) *CacheRegistry {
	registry := newCacheRegistry(params.Sessions, params.Config.Cache.MaxScopes, params.Logger)
	params.Lifecycle.Append(fx.StopHook(registry.Close))

	return registry
}

func newCacheRegistry(sessions service.SessionSource, maxScopes int, logger *slog.Logger) *CacheRegistry {
	if maxScopes <= 0 {
		maxScopes = 1
	}

	// size is positive so New cannot fail
	scopes, _ := lru.New[string, *cacheScope](maxScopes)

	r := &CacheRegistry{
		sessions: sessions,
		logger:   logger,
		scopes:   scopes,
	}
	r.unsubscribe = sessions.Subscribe(r.onSessionChanged)

	return r
}

// For returns the cache of the browser context carried by ctx.
func (r *CacheRegistry) For(ctx context.Context) *Cache {
	return r.ForHandle(deliverycontext.HandleFrom(ctx))
}

// ForHandle returns the cache scope of handle, creating it on first use.
// Requests outside a browser context get a throwaway cache.
func (r *CacheRegistry) ForHandle(handle string) *Cache {
	if handle == "" {
		return NewCache()
	}

	userID := uuid.Nil
	if session := r.sessions.GetSession(handle); session != nil {
		userID = session.UserID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if scope, ok := r.scopes.Get(handle); ok && scope.userID == userID {
		return scope.cache
	}

	scope := &cacheScope{userID: userID, cache: NewCache()}
	r.scopes.Add(handle, scope)

	return scope.cache
}

func (r *CacheRegistry) onSessionChanged(ev entity.SessionChanged) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scope, ok := r.scopes.Peek(ev.Handle)
	if !ok {
		return
	}
	if ev.Session != nil && ev.Session.UserID == scope.userID {
		return
	}

	r.scopes.Remove(ev.Handle)

	posts, profiles, listings := scope.cache.Stats()
	r.logger.Debug("Cache scope dropped",
		slog.String("handle", ev.Handle),
		slog.Int("posts", posts),
		slog.Int("profiles", profiles),
		slog.Int("listings", listings),
	)
}

// Size returns the number of live scopes.
func (r *CacheRegistry) Size() int {
	return r.scopes.Len()
}

// Close stops listening for session changes.
func (r *CacheRegistry) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

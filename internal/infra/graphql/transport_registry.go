package graphql

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	"quill/internal/domain/service"

	"go.uber.org/fx"
)

// TransportRegistry hands out the transport of a browser context. The
// authenticated transport of a context is discarded on every session change,
// so no request is sent with a replaced or revoked token.
type TransportRegistry struct {
	endpoint   string
	anonKey    string
	httpClient *http.Client
	sessions   service.SessionSource
	logger     *slog.Logger

	anonymous   *Transport
	unsubscribe func()

	mu       sync.Mutex
	byHandle map[string]*Transport
}

// TransportRegistryParams defines the parameters required for the registry.
type TransportRegistryParams struct {
	fx.In

	Config    *config.Config
	Sessions  service.SessionSource
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// NewTransportRegistry creates the registry and subscribes it to session changes.
func NewTransportRegistry(params TransportRegistryParams) *TransportRegistry {
	registry := newTransportRegistry(
		params.Config.Supabase.URL+graphqlPath,
		params.Config.Supabase.AnonKey,
		&http.Client{Timeout: params.Config.Supabase.Timeout},
		params.Sessions,
		params.Logger,
	)

	params.Lifecycle.Append(fx.StopHook(registry.Close))

	return registry
}

func newTransportRegistry(endpoint, anonKey string, httpClient *http.Client, sessions service.SessionSource, logger *slog.Logger) *TransportRegistry {
	r := &TransportRegistry{
		endpoint:   endpoint,
		anonKey:    anonKey,
		httpClient: httpClient,
		sessions:   sessions,
		logger:     logger,
		anonymous:  NewTransport(endpoint, anonKey, "", httpClient, logger),
		byHandle:   make(map[string]*Transport),
	}
	r.unsubscribe = sessions.Subscribe(r.onSessionChanged)

	return r
}

// For returns the transport of the browser context carried by ctx.
func (r *TransportRegistry) For(ctx context.Context) *Transport {
	return r.ForHandle(deliverycontext.HandleFrom(ctx))
}

// ForHandle returns the transport for handle, building it from the current
// session when none is cached. Contexts without a session share the anonymous transport.
func (r *TransportRegistry) ForHandle(handle string) *Transport {
	if handle == "" {
		return r.anonymous
	}

	session := r.sessions.GetSession(handle)
	if session == nil || session.AccessToken == "" {
		return r.anonymous
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.byHandle[handle]; ok && t.token == session.AccessToken {
		return t
	}

	t := NewTransport(r.endpoint, r.anonKey, session.AccessToken, r.httpClient, r.logger)
	r.byHandle[handle] = t

	return t
}

func (r *TransportRegistry) onSessionChanged(ev entity.SessionChanged) {
	r.mu.Lock()
	delete(r.byHandle, ev.Handle)
	r.mu.Unlock()
}

// Size returns the number of authenticated transports held.
func (r *TransportRegistry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byHandle)
}

// Close stops listening for session changes.
func (r *TransportRegistry) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

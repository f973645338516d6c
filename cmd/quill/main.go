package main

import (
	"context"
	"log/slog"
	"os"

	"quill/config"
	"quill/internal/delivery"
	"quill/internal/delivery/http"
	"quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/router/handler"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/errors"
	"quill/internal/infra/auth"
	"quill/internal/infra/auth/gotrue"
	"quill/internal/infra/graphql"
	logs "quill/internal/infra/log"
	gqlrepo "quill/internal/infra/persistence/graphql"
	"quill/internal/infra/persistence/memory"
	"quill/internal/infra/persistence/postgres"
	"quill/internal/infra/persistence/sqlite"
	"quill/internal/infra/qrcode"
	"quill/internal/usecase"
	"quill/internal/usecase/impl"
	"quill/internal/validation"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		validation.New,
		graphql.NewTransportRegistry,
		graphql.NewCacheRegistry,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newSessionRepository,
			newPostRepository,
			newProfileRepository,
		),
	)
}

type sessionBackendParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newSessionRepository picks the session backend named by session.backend.
func newSessionRepository(params sessionBackendParams) (repository.SessionRepository, error) {
	backend := params.Config.Session.Backend
	params.Logger.Info("Using session backend", slog.String("backend", backend))

	if backend == config.SessionBackendMemory {
		return memory.NewSessionRepository(), nil
	}

	sealer, err := auth.NewChaChaSealer(params.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token sealer")
	}

	switch backend {
	case config.SessionBackendPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return nil, err
		}

		return postgres.NewSessionRepository(db, sealer), nil
	case config.SessionBackendSQLite:
		db, err := sqlite.New(sqlite.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return nil, err
		}

		return sqlite.NewSessionRepository(db, sealer), nil
	default:
		return nil, errors.Errorf("unknown session backend: %s", backend)
	}
}

func newPostRepository(transports *graphql.TransportRegistry, caches *graphql.CacheRegistry, logger *slog.Logger) repository.PostRepository {
	return gqlrepo.NewPostRepository(transports, caches, logger)
}

func newProfileRepository(transports *graphql.TransportRegistry, caches *graphql.CacheRegistry, logger *slog.Logger) repository.ProfileRepository {
	return gqlrepo.NewProfileRepository(transports, caches, logger)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			gotrue.NewClient,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			newSessionSource,
			impl.NewAuthService,
			impl.NewPostService,
			impl.NewProfileService,
		),
	)
}

// newSessionSource exposes the read side of the session store to the GraphQL registries.
func newSessionSource(sessions usecase.SessionUsecase) service.SessionSource {
	return sessions
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewBrowserContextMiddleware,
			middleware.NewAuthorizer,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPages,
			handler.NewAuthHandler,
			handler.NewPostHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

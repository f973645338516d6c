// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"time"

	"quill/config"
	"quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/router/handler"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	ProfileHandler *handler.ProfileHandler
	BrowserContext *middleware.BrowserContextMiddleware
	Authorizer     *middleware.Authorizer
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up the pages. The browser context and the authorizer
// run for every page; the authorizer decides by path which ones it gates.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	auth := r.params.AuthHandler
	posts := r.params.PostHandler
	profile := r.params.ProfileHandler

	pages := e.Group("", r.params.BrowserContext.Handle, r.params.Authorizer.Handle)
	{
		pages.GET("/", posts.Home)
		pages.POST("/posts/more", posts.LoadMore)
		pages.GET("/posts/:id", posts.Show)
		pages.GET("/posts/:id/qr.png", posts.ShareQR)
		pages.POST("/posts/:id/delete", posts.Delete)
		pages.GET("/create-post", posts.CreatePage)
		pages.POST("/create-post", posts.Create)
		pages.GET("/posts/edit/:id", posts.EditPage)
		pages.POST("/posts/edit/:id", posts.Edit)

		pages.GET("/login", auth.LoginPage)
		pages.POST("/login/magic-link", auth.SendMagicLink, r.magicLinkLimiter())
		pages.GET("/login/oauth/:provider", auth.OAuthStart)
		pages.GET(usecase.CallbackPath, auth.Callback)
		pages.POST("/logout", auth.Logout)

		pages.GET("/profile", profile.Show)
		pages.POST("/profile", profile.Update)
		pages.POST("/profile/posts/more", profile.LoadMorePosts)
	}
}

// magicLinkLimiter throttles sign-in emails per client IP.
func (r *router) magicLinkLimiter() echo.MiddlewareFunc {
	perMinute := r.params.Config.HTTP.MagicLinksPerMinute

	return echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStoreWithConfig(
		echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(time.Minute / time.Duration(perMinute)),
			Burst:     perMinute,
			ExpiresIn: 10 * time.Minute,
		},
	))
}

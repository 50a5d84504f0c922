// Package router contains routing setup for the HTTP delivery.
package router

import (
	"jukebox/internal/delivery/http/middleware"
	"jukebox/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	TrackHandler    *handler.TrackHandler
	PlaylistHandler *handler.PlaylistHandler
	HealthHandler   *handler.HealthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimit       *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.params.HealthHandler.Check)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(r.params.RateLimit.Limit)
	{
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
	}

	// Catalog reads are anonymous; writes require a bearer token.
	trackGroup := api.Group("/tracks")
	{
		trackGroup.GET("", r.params.TrackHandler.List)
		trackGroup.GET("/:id", r.params.TrackHandler.Get)
		trackGroup.POST("", r.params.TrackHandler.Create, r.params.AuthMiddleware.Authenticate)
		trackGroup.PUT("/:id", r.params.TrackHandler.Update, r.params.AuthMiddleware.Authenticate)
		trackGroup.DELETE("/:id", r.params.TrackHandler.Delete, r.params.AuthMiddleware.Authenticate)
	}

	playlistGroup := api.Group("/playlists")
	playlistGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		playlistGroup.GET("", r.params.PlaylistHandler.ListMine)
		playlistGroup.POST("", r.params.PlaylistHandler.Create)
		playlistGroup.GET("/:id", r.params.PlaylistHandler.Get)
		playlistGroup.PUT("/:id", r.params.PlaylistHandler.Update)
		playlistGroup.DELETE("/:id", r.params.PlaylistHandler.Delete)
		playlistGroup.POST("/:id/tracks", r.params.PlaylistHandler.AddTrack)
		playlistGroup.DELETE("/:id/tracks/:trackId", r.params.PlaylistHandler.RemoveTrack)
	}

	userGroup := api.Group("/users")
	userGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		userGroup.GET("/:id", r.params.UserHandler.Get)
		userGroup.GET("/:id/playlists", r.params.PlaylistHandler.ListForUser)
		userGroup.PUT("/:id", r.params.UserHandler.Update)
		userGroup.DELETE("/:id", r.params.UserHandler.Delete)
	}
}

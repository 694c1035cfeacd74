// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"agrimap/internal/delivery/http/middleware"
	"agrimap/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler and route-level middleware, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	FarmHandler    *handler.FarmHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	farmHandler    *handler.FarmHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		farmHandler:    params.FarmHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Farm routes require authentication
	farmGroup := api.Group("/farms")
	farmGroup.Use(r.authMiddleware.Authenticate)
	{
		farmGroup.POST("", r.farmHandler.CreateFarm)
		farmGroup.GET("", r.farmHandler.ListFarms)
		farmGroup.DELETE("/:id", r.farmHandler.DeleteFarm)
	}
}

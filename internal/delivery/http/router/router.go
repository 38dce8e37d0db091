// Package router contains routing setup for the HTTP delivery.
package router

import (
	"rideauth/internal/delivery/http/middleware"
	"rideauth/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router. Fx injects the required
// handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application. Signup and
// signin are public; validate sits behind the authentication middleware.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/api/v1/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/signin", r.authHandler.Signin)
		authGroup.GET("/validate", r.authHandler.Validate, r.authMiddleware.Authenticate)
	}
}

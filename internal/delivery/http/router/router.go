// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"usersvc/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler *handler.UserHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler *handler.UserHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler: params.UserHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	userGroup := e.Group("/api/users")
	{
		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.POST("", r.userHandler.CreateUser)
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.PUT("/:id", r.userHandler.UpdateUser)
		userGroup.DELETE("/:id", r.userHandler.DeleteUser)
		userGroup.GET("/email/:email", r.userHandler.GetUserByEmail)
		userGroup.POST("/login", r.userHandler.VerifyCredentials)
		userGroup.POST("/verify-credentials", r.userHandler.VerifyCredentials)
		userGroup.POST("/forgot-password", r.userHandler.ForgotPassword)
		userGroup.POST("/reset-password", r.userHandler.ResetPassword)
	}
}

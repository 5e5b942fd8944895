package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/userbase/backend/api/handler"
	"github.com/userbase/backend/internal/middleware"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	User   *apiHandler.UserHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, auth *middleware.Auth) *router.Router {
	r := router.New()

	r.GET("/", auth.OptionalUser(handlers.Health.Root))
	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/password-recovery", handlers.Auth.RecoverPassword)
	r.POST("/api/v1/auth/reset-password", handlers.Auth.ResetPassword)

	// Self-service routes
	r.GET("/api/v1/users/me", auth.RequireActiveUser(handlers.User.Me))
	r.PUT("/api/v1/users/me", auth.RequireActiveUser(handlers.User.UpdateMe))

	// Administrative routes
	r.GET("/api/v1/users", auth.RequireSuperuser(handlers.User.List))
	r.POST("/api/v1/users", auth.RequireSuperuser(handlers.User.Create))
	r.GET("/api/v1/users/{id}", auth.RequireSuperuser(handlers.User.GetByID))
	r.PUT("/api/v1/users/{id}", auth.RequireSuperuser(handlers.User.Update))
	r.DELETE("/api/v1/users/{id}", auth.RequireSuperuser(handlers.User.Delete))

	return r
}

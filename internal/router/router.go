package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/handler"
	"github.com/EsmaNErdem/jobly/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the token-issuing routes. Both endpoints live under
// /v1/auth and require no existing session: register creates a non-admin
// account and returns a token, token exchanges credentials for a token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/token", a.Token)
}

// RegisterCompanies wires the company endpoints. Browsing is public;
// creation, update and deletion are admin-only. The cache middleware is
// applied to the read endpoints only.
func RegisterCompanies(e *echo.Echo, h *handler.CompanyHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/companies")
	g.GET("", h.List, cache)
	g.GET("/:handle", h.Get, cache)
	g.POST("", h.Create, middleware.RequireAdmin())
	g.PATCH("/:handle", h.Update, middleware.RequireAdmin())
	g.DELETE("/:handle", h.Remove, middleware.RequireAdmin())
}

// RegisterJobs wires the job endpoints, mirroring the company surface:
// public reads with caching, admin-only writes.
func RegisterJobs(e *echo.Echo, h *handler.JobHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/jobs")
	g.GET("", h.List, cache)
	g.GET("/:id", h.Get, cache)
	g.POST("", h.Create, middleware.RequireAdmin())
	g.PATCH("/:id", h.Update, middleware.RequireAdmin())
	g.DELETE("/:id", h.Remove, middleware.RequireAdmin())
}

// RegisterUsers wires the user and application endpoints. Creation and
// listing are admin-only; everything keyed by :username is open to an admin
// or to the user themselves. Responses here are per-user, so none of these
// routes are cached.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler) {
	g := e.Group("/v1/users")
	g.POST("", h.Create, middleware.RequireAdmin())
	g.GET("", h.List, middleware.RequireAdmin())

	self := middleware.RequireAdminOrSelf("username")
	g.GET("/:username", h.Get, self)
	g.PATCH("/:username", h.Update, self)
	g.DELETE("/:username", h.Remove, self)
	g.POST("/:username/jobs/:id", h.Apply, self)
	g.PATCH("/:username/jobs/:id", h.UpdateApplication, self)
}

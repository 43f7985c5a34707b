// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/handler"
	"github.com/olzhasbek/qazcargo/internal/middleware"
	"github.com/olzhasbek/qazcargo/internal/model"
)

// RegisterRoutes registers routes that carry no application dependencies.
// Currently this is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterShipping registers the public calculator endpoints. cacheMW
// fronts the two listing endpoints whose content changes only on rate
// edits; pass nil middleware to skip caching (tests, redis outage).
func RegisterShipping(e *echo.Echo, h *handler.ShippingHandler, cacheMW echo.MiddlewareFunc) {
	var mws []echo.MiddlewareFunc
	if cacheMW != nil {
		mws = append(mws, cacheMW)
	}
	e.GET("/v1/cities", h.Cities, mws...)
	e.GET("/v1/rates", h.LaneRates, mws...)
	e.POST("/v1/calculate", h.Calculate)
}

// RegisterAuth registers the authentication endpoints and the protected
// group. Unauthenticated operations live under /v1/auth and are rate
// limited per IP; protected endpoints live under /v1 behind the session
// middleware, with the revocation endpoint additionally gated to admins.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sh *handler.ShippingHandler, sessionMW, limitMW echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limitMW != nil {
		g.Use(limitMW)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/check", a.Check)
	g.POST("/logout", a.Logout)

	authed := e.Group("/v1", sessionMW)
	authed.GET("/me", a.Me, middleware.RequireRole(model.RoleUser, model.RoleWorker, model.RoleAdmin))

	admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/revoke-sessions", a.RevokeSessions)
	admin.GET("/routes", sh.ListRoutes)
}

package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-booking/internal/handler"
	"github.com/iliyamo/train-booking/internal/middleware"
	"github.com/iliyamo/train-booking/internal/model"
)

// Handlers groups every handler the API exposes.
type Handlers struct {
	Auth    *handler.AuthHandler
	Trains  *handler.TrainHandler
	Live    *handler.LiveStatusHandler
	Tickets *handler.TicketHandler
}

// Middleware carries the Redis-backed middlewares. Either may be a
// pass-through.
type Middleware struct {
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes registers routes that need no authentication and sit
// outside /v1.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the /v1 surface. Every /v1 route is rate limited;
// station lookups and live status are cached.
func RegisterAPI(e *echo.Echo, h Handlers, mw Middleware, jwtSecret string) {
	v1 := e.Group("/v1", mw.RateLimit)

	v1.GET("/stations-search", h.Trains.StationsSearch, mw.Cache)
	v1.GET("/train-search", h.Trains.TrainSearch)
	v1.GET("/train-details", h.Trains.TrainDetails)
	v1.GET("/fares", h.Trains.Fares)
	v1.GET("/live-status", h.Live.LiveStatus, mw.Cache)

	authed := middleware.JWTAuth(jwtSecret)
	v1.POST("/update-seats", h.Trains.UpdateSeats, authed)
	v1.POST("/tickets", h.Tickets.Create, authed, middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	v1.GET("/tickets", h.Tickets.List, authed)
	v1.GET("/profile", h.Tickets.Profile, authed)

	a := v1.Group("/auth")
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.Login)
	a.POST("/refresh", h.Auth.Refresh)
	a.POST("/refresh-access", h.Auth.RefreshAccess)
	a.POST("/logout", h.Auth.Logout)
}

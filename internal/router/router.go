// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sergiorey/hotel-reservation/internal/handler"
	"github.com/sergiorey/hotel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring to verify the service
// is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff authentication endpoints under
// /v1/auth.  Both are unauthenticated: register creates an account,
// login exchanges credentials for an access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterRooms registers the room endpoints.  Reads are public;
// mutations require a valid staff token.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, jwtSecret string) {
	e.GET("/v1/rooms", h.List)
	e.GET("/v1/rooms/:numero", h.Get)

	g := e.Group("/v1/rooms")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.PUT("/:numero", h.Update)
	g.DELETE("/:numero", h.Delete)
}

// RegisterClients registers the client endpoints.  Reads are public;
// mutations require a valid staff token.
func RegisterClients(e *echo.Echo, h *handler.ClientHandler, jwtSecret string) {
	e.GET("/v1/clients", h.List)
	e.GET("/v1/clients/:id", h.Get)

	g := e.Group("/v1/clients")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterReservations registers the booking workflow.  Listing and
// inspection are public; booking and cancellation require a valid
// staff token.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	e.GET("/v1/reservations", h.ListActive)
	e.GET("/v1/reservations/:id", h.Get)
	e.GET("/v1/clients/:id/reservations", h.ListForClient)

	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Book)
	g.DELETE("/:id", h.Cancel)
}

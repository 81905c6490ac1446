package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-auction/internal/handler"
	"github.com/iliyamo/live-auction/internal/middleware"
)

// RegisterAdmin registers the auctioneer endpoints.  Login is open; all
// other routes require a valid JWT carrying the ADMIN role.  The
// auction lifecycle controls (activate, close, mark unsold) live here
// because only the auctioneer may transition item state.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, h *handler.AdminHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	e.POST("/v1/admin/login", a.Login)

	g := e.Group("/v1/admin", mw...)
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/me", a.Me)

	// Item registry management.
	g.POST("/items", h.CreateItem)
	g.DELETE("/items/:id", h.DeleteItem)

	// Auction lifecycle controls.
	g.POST("/items/:id/activate", h.ActivateItem)
	g.POST("/items/:id/unsold", h.MarkUnsold)
	g.POST("/auction/close", h.CloseAuction)

	// Team management.
	g.POST("/teams", h.CreateTeam)
	g.PATCH("/teams/:name", h.UpdateTeam)
	g.DELETE("/teams/:name", h.DeleteTeam)
	g.DELETE("/teams", h.ClearTeams)
}

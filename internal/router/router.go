package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/live-auction/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated read endpoints the
// dashboard polls each refresh cycle.  The optional cache middleware is
// applied here so spectators hitting the same views within the poll
// interval share one database read.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// The active item plus leading bid and next minimum amount.
	g.GET("/auction/active", p.GetActiveAuction)
	// Full item catalog with lifecycle state.
	g.GET("/items", p.ListItems)
	// Bid history for one item, highest first.
	g.GET("/items/:id/bids", p.GetItemBids)
	// Remaining budget per team; live leading bids are not yet debited.
	g.GET("/teams/budgets", p.GetTeamBudgets)
	// Aggregated squad metrics for one team.
	g.GET("/teams/:name/squad", p.GetTeamSquad)
	// Settlement history tables rendered at the bottom of the dashboard.
	g.GET("/history/sold", p.GetSoldHistory)
	g.GET("/history/unsold", p.GetUnsoldHistory)
}

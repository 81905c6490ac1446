package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-auction/internal/handler"
)

// RegisterBidding registers the bid endpoint.  Team credentials are
// carried in the request body and verified by the handler, so no JWT
// middleware applies; the optional middleware slot is used for rate
// limiting so a misbehaving client cannot hammer the engine lock.
func RegisterBidding(e *echo.Echo, b *handler.BidHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/auction", mw...)
	g.POST("/bid", b.PlaceBid)
}

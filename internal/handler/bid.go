package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-auction/internal/auction"
	"github.com/iliyamo/live-auction/internal/repository"
	"github.com/iliyamo/live-auction/internal/utils"
)

// BidHandler accepts bids from teams.  Team credentials travel with
// every bid request — the dashboard keeps no team session — and the
// password check against the stored bcrypt hash is the system's only
// access control for bidding.
type BidHandler struct {
	TeamRepo *repository.TeamRepo
	Engine   *auction.Engine
}

// NewBidHandler constructs a BidHandler.  All dependencies must be
// non-nil.
func NewBidHandler(teamRepo *repository.TeamRepo, engine *auction.Engine) *BidHandler {
	if teamRepo == nil || engine == nil {
		panic("nil dependency passed to NewBidHandler")
	}
	return &BidHandler{TeamRepo: teamRepo, Engine: engine}
}

// PlaceBid handles POST /v1/auction/bid.  The body carries the item id,
// the team name and password, and the leading amount the bidder saw on
// screen.  The engine recomputes the accepted amount server-side from
// the item's current state, so a stale displayed amount can never skip
// a tier or double-apply an increment; when the amount the bidder saw
// no longer matches the item the bid is refused with 409 so they can
// refresh and decide again.
func (h *BidHandler) PlaceBid(c echo.Context) error {
	var body struct {
		ItemID   uint64 `json:"item_id"`
		Team     string `json:"team"`
		Password string `json:"password"`
		Amount   int64  `json:"amount"` // the leading amount the bidder observed
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}
	teamName := strings.TrimSpace(body.Team)
	if teamName == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "team and password are required"})
	}

	ctx := c.Request().Context()
	team, err := h.TeamRepo.GetByName(ctx, teamName)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(team.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid team credentials"})
	}

	result, err := h.Engine.PlaceBid(ctx, body.ItemID, team.Name, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case errors.Is(err, repository.ErrTeamNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
		case errors.Is(err, auction.ErrStaleBid):
			return c.JSON(http.StatusConflict, echo.Map{"error": "bidding has moved on, refresh and bid again"})
		case errors.Is(err, auction.ErrInsufficientBudget):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "insufficient budget"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not place bid"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"bid":              result,
		"formatted_amount": auction.FormatAmount(result.Amount),
	})
}

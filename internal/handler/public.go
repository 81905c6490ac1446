package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-auction/internal/auction"
	"github.com/iliyamo/live-auction/internal/repository"
)

// PublicHandler serves the read-only projections the dashboard polls:
// the active item with its current price, the item catalog, team
// budgets, bid history and the sold/unsold record.  No authentication
// is applied; these views are visible to every spectator.
type PublicHandler struct {
	ItemRepo *repository.ItemRepo
	TeamRepo *repository.TeamRepo
	BidRepo  *repository.BidRepo
	SaleRepo *repository.SaleRepo
	Engine   *auction.Engine
}

// NewPublicHandler constructs a PublicHandler.  All dependencies must
// be non-nil.
func NewPublicHandler(itemRepo *repository.ItemRepo, teamRepo *repository.TeamRepo, bidRepo *repository.BidRepo, saleRepo *repository.SaleRepo, engine *auction.Engine) *PublicHandler {
	if itemRepo == nil || teamRepo == nil || bidRepo == nil || saleRepo == nil || engine == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{ItemRepo: itemRepo, TeamRepo: teamRepo, BidRepo: bidRepo, SaleRepo: saleRepo, Engine: engine}
}

// GetActiveAuction handles GET /v1/auction/active.  It returns the
// active item together with the leading bid (if any) and the amount the
// next bid will be accepted at.  When nothing is active the response
// carries active=false so the dashboard can show an idle screen.
func (p *PublicHandler) GetActiveAuction(c echo.Context) error {
	ctx := c.Request().Context()
	item, err := p.ItemRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusOK, echo.Map{"active": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := echo.Map{
		"active":           true,
		"item":             item,
		"current_amount":   item.BasePrice,
		"formatted_amount": auction.FormatAmount(item.BasePrice),
	}
	leading, err := p.BidRepo.HighestByItem(ctx, item.ID)
	switch {
	case err == nil:
		resp["leading_team"] = leading.TeamName
		resp["next_min"] = leading.Amount + auction.Increment(leading.Amount)
	case errors.Is(err, sql.ErrNoRows):
		// opening bid is accepted at base price exactly
		resp["next_min"] = item.BasePrice
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, resp)
}

// ListItems handles GET /v1/items and returns the full item catalog
// with lifecycle state.
func (p *PublicHandler) ListItems(c echo.Context) error {
	items, err := p.ItemRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetItemBids handles GET /v1/items/:id/bids and returns the item's bid
// history, highest first.
func (p *PublicHandler) GetItemBids(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	ctx := c.Request().Context()
	if _, err := p.ItemRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bids, err := p.BidRepo.ListByItem(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bids})
}

// GetTeamBudgets handles GET /v1/teams/budgets.  Budgets reflect
// settled purchases only: a team leading the live bidding has not yet
// been debited.
func (p *PublicHandler) GetTeamBudgets(c echo.Context) error {
	teams, err := p.TeamRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type teamBudget struct {
		Name            string `json:"name"`
		BudgetRemaining int64  `json:"budget_remaining"`
		InitialBudget   int64  `json:"initial_budget"`
		LogoURL         string `json:"logo_url"`
		Formatted       string `json:"formatted"`
	}
	out := make([]teamBudget, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamBudget{
			Name:            t.Name,
			BudgetRemaining: t.BudgetRemaining,
			InitialBudget:   t.InitialBudget,
			LogoURL:         t.LogoURL,
			Formatted:       auction.FormatAmount(t.BudgetRemaining),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetTeamSquad handles GET /v1/teams/:name/squad and returns the
// aggregated squad metrics for a team.
func (p *PublicHandler) GetTeamSquad(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team name"})
	}
	info, err := p.Engine.SquadInfoFor(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetSoldHistory handles GET /v1/history/sold.
func (p *PublicHandler) GetSoldHistory(c echo.Context) error {
	sales, err := p.SaleRepo.ListSold(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sales})
}

// GetUnsoldHistory handles GET /v1/history/unsold.
func (p *PublicHandler) GetUnsoldHistory(c echo.Context) error {
	items, err := p.SaleRepo.ListUnsold(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

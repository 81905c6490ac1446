package handler // handler package contains admin item and auction-control handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-auction/internal/auction"
	"github.com/iliyamo/live-auction/internal/model"
	"github.com/iliyamo/live-auction/internal/repository"
)

// AdminHandler groups the repositories and the auction engine needed
// for the auctioneer's actions: item management, team management and
// the lifecycle controls (activate, close, mark unsold).  All methods
// assume JWT authentication with the ADMIN role has already been
// enforced by middleware.
type AdminHandler struct {
	ItemRepo *repository.ItemRepo
	TeamRepo *repository.TeamRepo
	Engine   *auction.Engine
	Bcrypt   int // bcrypt cost used when (re)setting team passwords
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(itemRepo *repository.ItemRepo, teamRepo *repository.TeamRepo, engine *auction.Engine, bcryptCost int) *AdminHandler {
	if itemRepo == nil || teamRepo == nil || engine == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{ItemRepo: itemRepo, TeamRepo: teamRepo, Engine: engine, Bcrypt: bcryptCost}
}

// CreateItem handles POST /v1/admin/items.  Rating arrives as a string
// because the admin form is a free-text field; a non-numeric value is
// rejected without inserting anything.  Base price is given in smallest
// currency units.
func (h *AdminHandler) CreateItem(c echo.Context) error {
	var body struct {
		Name        string `json:"name"`
		Rating      string `json:"rating"`
		Category    string `json:"category"`
		Nationality string `json:"nationality"`
		ImageURL    string `json:"image_url"`
		BasePrice   int64  `json:"base_price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	rating, err := strconv.ParseInt(strings.TrimSpace(body.Rating), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": auction.ErrInvalidRating.Error()})
	}
	if !model.ValidCategory(body.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	if body.BasePrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_price must not be negative"})
	}
	item := &model.Item{
		Name:        name,
		Rating:      int32(rating),
		Category:    body.Category,
		Nationality: strings.TrimSpace(body.Nationality),
		ImageURL:    strings.TrimSpace(body.ImageURL),
		BasePrice:   body.BasePrice,
	}
	if err := h.ItemRepo.Create(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create item"})
	}
	return c.JSON(http.StatusCreated, item)
}

// DeleteItem handles DELETE /v1/admin/items/:id.  Removal cascades to
// the item's bids and its sold/unsold history snapshots.
func (h *AdminHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	if err := h.Engine.DeleteItem(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete item"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ActivateItem handles POST /v1/admin/items/:id/activate and opens
// bidding on the item.  Any previously active item is deactivated.
func (h *AdminHandler) ActivateItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	if err := h.Engine.Activate(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not activate item"})
	}
	return c.JSON(http.StatusOK, echo.Map{"activated": id})
}

// CloseAuction handles POST /v1/admin/auction/close.  It settles the
// active item: the highest bidder wins and is debited, or, with no
// bids, the item simply deactivates unresolved.
func (h *AdminHandler) CloseAuction(c echo.Context) error {
	result, err := h.Engine.CloseActive(c.Request().Context())
	if err != nil {
		if errors.Is(err, auction.ErrNoActiveItem) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active item"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not close bidding"})
	}
	return c.JSON(http.StatusOK, result)
}

// MarkUnsold handles POST /v1/admin/items/:id/unsold and force-resolves
// the item as unsold regardless of its current state.
func (h *AdminHandler) MarkUnsold(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	if err := h.Engine.MarkUnsold(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not mark item unsold"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unsold": id})
}

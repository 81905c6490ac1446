package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-auction/internal/repository"
)

// CreateTeam handles POST /v1/admin/teams.  A team is created with its
// starting budget (initial and remaining are equal at creation), a logo
// URL and a password that bidders will present when placing bids.  The
// password is stored as a bcrypt hash only.
func (h *AdminHandler) CreateTeam(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Budget   int64  `json:"budget"`
		LogoURL  string `json:"logo_url"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}
	if body.Budget < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget must not be negative"})
	}
	id, err := h.TeamRepo.Create(c.Request().Context(), name, body.Budget, strings.TrimSpace(body.LogoURL), body.Password, h.Bcrypt)
	if err != nil {
		if errors.Is(err, repository.ErrTeamExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "team name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create team"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": name})
}

// UpdateTeam handles PATCH /v1/admin/teams/:name.  Budget and logo are
// always updated; the password changes only when a new one is supplied.
func (h *AdminHandler) UpdateTeam(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team name"})
	}
	var body struct {
		Budget   int64  `json:"budget"`
		LogoURL  string `json:"logo_url"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Budget < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget must not be negative"})
	}
	if err := h.TeamRepo.Update(c.Request().Context(), name, body.Budget, strings.TrimSpace(body.LogoURL), body.Password, h.Bcrypt); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update team"})
	}
	updated, err := h.TeamRepo.GetByName(c.Request().Context(), name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load team"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"name":             updated.Name,
		"budget_remaining": updated.BudgetRemaining,
		"initial_budget":   updated.InitialBudget,
		"logo_url":         updated.LogoURL,
	})
}

// DeleteTeam handles DELETE /v1/admin/teams/:name.
func (h *AdminHandler) DeleteTeam(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team name"})
	}
	if err := h.TeamRepo.Delete(c.Request().Context(), name); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete team"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearTeams handles DELETE /v1/admin/teams and removes every team.
// Used when resetting the auction between seasons.
func (h *AdminHandler) ClearTeams(c echo.Context) error {
	if err := h.TeamRepo.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear teams"})
	}
	return c.NoContent(http.StatusNoContent)
}

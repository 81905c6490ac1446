package handler

import (
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/live-auction/internal/config"
	"github.com/iliyamo/live-auction/internal/utils"
)

// AuthHandler implements the auctioneer login.  The dashboard has a
// single admin credential supplied via configuration as a bcrypt hash;
// a successful login returns a short-lived JWT with the ADMIN role that
// the admin routes require.
type AuthHandler struct {
	cfg config.Config
}

// NewAuthHandler constructs an AuthHandler from the loaded config.
func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Login handles POST /v1/admin/login.  The body must contain the admin
// password; it is verified against the configured bcrypt hash.  On
// success a signed access token and its expiry are returned.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" || !utils.VerifyPassword(h.cfg.AdminPasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.cfg.JWTSecret, 1, "ADMIN", h.cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}

// Me handles GET /v1/admin/me and confirms the caller's session.  It is
// used by the dashboard to decide whether to show the admin panel.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"role": c.Get("role")})
}

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/peterldowns/testy/check"

	"github.com/iliyamo/live-auction/internal/config"
)

func bidContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auction/bid", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBucketKey_SeparatesTeams(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "team"}
	a := bucketKey(cfg, bidContext(`{"team":"Titans","password":"x"}`))
	b := bucketKey(cfg, bidContext(`{"team":"Giants","password":"x"}`))
	check.Equal(t, "rl:team:Titans", a)
	check.Equal(t, "rl:team:Giants", b)
}

func TestBucketKey_FallsBackToIPWithoutTeam(t *testing.T) {
	// httptest requests carry the documentation address as RemoteAddr.
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "team"}
	check.Equal(t, "rl:team:192.0.2.1", bucketKey(cfg, bidContext(`{}`)))
}

func TestTeamFromBody_RestoresBodyForHandler(t *testing.T) {
	payload := `{"team":"Titans","password":"x","amount":9500000}`
	c := bidContext(payload)

	check.Equal(t, "Titans", teamFromBody(c, "fallback"))

	restored, err := io.ReadAll(c.Request().Body)
	if err != nil {
		t.Fatalf("read restored body: %v", err)
	}
	check.Equal(t, payload, string(restored))
}

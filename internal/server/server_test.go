package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "0",
		Env:                  "test",
		JWTSecret:            "test-secret",
		JWTExpiresHours:      1,
		CORSOrigins:          "*",
		SiteURL:              "https://sinfini.example",
		RateLimitPerMinute:   100,
		ChatbotFallback:      config.DefaultChatbotFallback,
		ChatbotFAQEncoding:   "text",
		EmailFromName:        "Sinfini Marketing FZC",
		AuditRetentionDays:   90,
		ChatLogRetentionDays: 30,
		MaintenanceCron:      "0 0 3 * * *",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	srv, err := New(cfg, db)
	require.NoError(t, err)
	return srv
}

func TestServer_RoutesAndMiddleware(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = srv.App.Test(httptest.NewRequest(http.MethodGet, "/api/chatbot/settings", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.App.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_UnknownRouteUsesErrorShape(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Cannot GET /api/nope"}`, string(body))
}

func TestServer_CORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = "https://sinfini.example"
	srv := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/chatbot/settings", nil)
	req.Header.Set("Origin", "https://sinfini.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp, err := srv.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://sinfini.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNew_RejectsBadConfig(t *testing.T) {
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)

	cfg := testConfig()
	cfg.MaintenanceCron = "every night"
	_, err = New(cfg, db)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.EmailProvider = "carrier-pigeon"
	cfg.AdminEmail = "sales@sinfini.example"
	_, err = New(cfg, db)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Env = "production"
	cfg.JWTSecret = config.DevJWTSecret
	_, err = New(cfg, db)
	assert.EqualError(t, err, "JWT_SECRET must be set in production")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := newTestServer(t, testConfig())

	require.NoError(t, srv.Start(context.Background()))
	assert.NoError(t, srv.Shutdown(context.Background()))
}

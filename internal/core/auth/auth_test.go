package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *Service, *audit.Service) {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &audit.AuditLog{}))

	svc := NewService(db, testSecret, 1)
	created, err := svc.EnsureAdmin(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	require.True(t, created)

	auditService := audit.NewService(db)
	app := fiber.New()
	NewHandler(svc, auditService).RegisterRoutes(app.Group("/api"))
	return app, svc, auditService
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.NoError(t, VerifyPassword(hash, "pw"))
	assert.Error(t, VerifyPassword(hash, "nope"))
}

func TestJWTService_RoundTripAndExpiry(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	token, expiresIn, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = NewJWTService("other", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestService_EnsureAdminIsIdempotent(t *testing.T) {
	_, svc, _ := newTestApp(t)

	created, err := svc.EnsureAdmin(context.Background(), "admin", "changed")
	require.NoError(t, err)
	assert.False(t, created)

	// the original password still works
	_, err = svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret"})
	assert.NoError(t, err)
}

func TestHandler_Login(t *testing.T) {
	app, _, auditService := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/api/auth/login", `{"username":"admin","password":"s3cret"}`, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, map[string]interface{}{"username": "admin"}, body["user"])

	status, _ = doJSON(t, app, "POST", "/api/auth/login", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", "/api/auth/login", `{"username":"ghost","password":"x"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", "/api/auth/login", `{"username":"admin"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	logs, err := auditService.GetLogs(context.Background(), audit.AuditFilter{Action: audit.ActionLogin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), logs.TotalCount)
}

func TestHandler_VerifyAndLogout(t *testing.T) {
	app, svc, auditService := newTestApp(t)
	login, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	status, body := doJSON(t, app, "GET", "/api/auth/verify", "", login.AccessToken)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"username": "admin"}, body["user"])

	status, body = doJSON(t, app, "GET", "/api/auth/verify", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "missing_authorization", body["error"])

	status, body = doJSON(t, app, "GET", "/api/auth/verify", "", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid_token", body["error"])

	expired := NewJWTService(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.GenerateAccessToken("admin")
	require.NoError(t, err)
	status, body = doJSON(t, app, "GET", "/api/auth/verify", "", stale)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "token_expired", body["error"])

	status, _ = doJSON(t, app, "POST", "/api/auth/logout", "", login.AccessToken)
	assert.Equal(t, fiber.StatusOK, status)

	logs, err := auditService.GetLogs(context.Background(), audit.AuditFilter{Action: audit.ActionLogout, Actor: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), logs.TotalCount)
}

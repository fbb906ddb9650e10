package middleware

import (
	"foodgram-backend/domain"
	"foodgram-backend/pkg/jwt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, handlers ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + "|" + c.Locals("role").(string))
	})
	app.Get("/", handlers...)
	return app
}

func body(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWith("secret", "FOODGRAM", time.Hour)
	token, err := jwtService.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	app := newTestApp(t, NewMiddleware().AuthMiddleware(jwtService))

	status, text := body(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-1|user", text)

	status, text = body(t, app, "Token "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-1|user", text)

	status, _ = body(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = body(t, app, "Bearer broken")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTServiceWith("secret", "FOODGRAM", time.Hour)
	token, err := jwtService.GenerateTokenUser("user-2", domain.RoleAdmin)
	require.NoError(t, err)

	app := newTestApp(t, NewMiddleware().OptionalAuthMiddleware(jwtService))

	status, text := body(t, app, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "|", text)

	status, text = body(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-2|admin", text)

	status, _ = body(t, app, "Bearer broken")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminOnly(t *testing.T) {
	jwtService := jwt.NewJWTServiceWith("secret", "FOODGRAM", time.Hour)
	userToken, err := jwtService.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateTokenUser("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	m := NewMiddleware()
	app := newTestApp(t, m.AuthMiddleware(jwtService), m.AdminOnly())

	status, _ := body(t, app, "Bearer "+userToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, text := body(t, app, "Bearer "+adminToken)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "admin-1|admin", text)
}

package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildAuthApp app mínima con el middleware montado y una ruta que devuelve
// la identidad que quedó en Locals.
func buildAuthApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(secret))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c))
	})
	return app
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildAuthApp(testSecret)

	token, err := jwt.Generate(testSecret, "user-42", "repuestos-api", 5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildAuthApp(testSecret)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildAuthApp(testSecret)

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildAuthApp(testSecret)

	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "user-42",
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
		UserID: "user-42",
	}
	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildAuthApp(testSecret)

	token, err := jwt.Generate("otro-secreto", "user-42", "repuestos-api", 5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetUserID_PropagaIdentidad(t *testing.T) {
	app := buildAuthApp(testSecret)

	token, err := jwt.Generate(testSecret, "user-42", "repuestos-api", 5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "user-42", string(body[:n]))
}

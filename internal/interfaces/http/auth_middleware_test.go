package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	apphttp "github.com/tiendix/retail-api/internal/interfaces/http"
)

// stubResolver resuelve cualquier token igual a "valido" a la identidad fija;
// el resto falla como no autorizado.
type stubResolver struct {
	ident auth.Identity
}

func (s stubResolver) Resolve(ctx context.Context, token string) (auth.Identity, error) {
	if token != "valido" {
		return auth.Identity{}, domain.ErrUnauthorized
	}
	return s.ident, nil
}

func buildTestApp(ident auth.Identity) *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(stubResolver{ident: ident}), func(c *fiber.Ctx) error {
		got := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{
			"user_id":   got.UserID,
			"tenant_id": got.TenantID,
			"role":      got.Role,
			"scope":     string(got.Scope),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_TokenValidoCargaIdentity(t *testing.T) {
	app := buildTestApp(auth.Identity{
		UserID: "u1", TenantID: "t1", Role: entity.RoleAdmin,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	})
	resp := doRequest(t, app, "Bearer valido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "t1", body["tenant_id"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "tenant", body["scope"])
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(auth.Identity{})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(auth.Identity{})
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenRechazadoPorResolver(t *testing.T) {
	app := buildTestApp(auth.Identity{})
	resp := doRequest(t, app, "Bearer revocado-o-expirado")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// tokenGateway IdentityGateway de prueba: mapa token -> identidad.
type tokenGateway struct {
	identities map[string]ports.Identity
}

func newTokenGateway() *tokenGateway {
	return &tokenGateway{identities: map[string]ports.Identity{
		"token-u1":    {UID: "u1", Email: "u1@ejemplo.com", Role: "user"},
		"token-u2":    {UID: "u2", Email: "u2@ejemplo.com", Role: "user"},
		"token-admin": {UID: "admin-uid", Email: "admin@ejemplo.com", Role: "admin"},
		"token-legacy": {UID: "legacy-uid", Email: "legacy@ejemplo.com"}, // sin claim de rol
	}}
}

func (g *tokenGateway) VerifyToken(_ context.Context, token string) (ports.Identity, error) {
	id, ok := g.identities[token]
	if !ok {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	return id, nil
}

func (g *tokenGateway) CreateIdentity(_ context.Context, email, _ string) (ports.Identity, error) {
	return ports.Identity{UID: "new-uid", Email: email}, nil
}

func (g *tokenGateway) PasswordLogin(_ context.Context, _, _ string) (string, error) {
	return "token-u1", nil
}

// buildProtectedApp app mínima con AuthMiddleware (+ RequireRole opcional).
func buildProtectedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(newTokenGateway())}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"uid":  apphttp.GetUID(c),
			"role": apphttp.GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
	assert.Contains(t, string(body), domain.ErrUnauthenticated.Error(),
		"la respuesta debe llevar el error de dominio de autenticación")
}

// Header sin esquema Bearer → 401.
func TestAuthMiddleware_FormatoInvalidoRetorna401(t *testing.T) {
	app := buildProtectedApp()

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer   "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), domain.ErrUnauthenticated.Error(), "header %q", header)
	}
}

// Token rechazado por el gateway → 403 INVALID_TOKEN (distinto de 401).
func TestAuthMiddleware_TokenInvalidoRetorna403(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "Bearer token-desconocido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"token inválido es un fallo de permiso, no de autenticación")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token válido → uid y rol quedan en el contexto.
func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "Bearer token-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin-uid", body["uid"])
	assert.Equal(t, "admin", body["role"])
}

// Token sin claim de rol → rol por defecto "user".
func TestAuthMiddleware_RolPorDefecto(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "Bearer token-legacy")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doRequest(t, app, "Bearer token-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doRequest(t, app, "Bearer token-u1")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildProtectedApp("admin", "user")
	resp := doRequest(t, app, "Bearer token-u1")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// RequireRole sin AuthMiddleware delante: no hay rol en el contexto → 403.
func TestRequireRole_SinRolEnContexto(t *testing.T) {
	app := fiber.New()
	app.Get("/solo-role", apphttp.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/solo-role", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/sysstock-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/sysstock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "sysstock-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware más
// los middlewares de rol indicados y un handler dummy que devuelve 200.
func buildTestApp(guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{apphttp.AuthMiddleware(testJWTSecret)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un JWT con los flags indicados.
func tokenFor(t *testing.T, companyID string, isAdmin, isMaster bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, isAdmin, isMaster, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
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

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"is_admin":   apphttp.IsAdmin(c),
			"is_master":  apphttp.IsMaster(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testCompanyID, true, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, true, body["is_admin"])
	assert.Equal(t, false, body["is_master"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de middlewares de rol
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: un admin del tenant accede a una ruta admin → HTTP 200.
func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp(apphttp.RequireAdmin())
	resp := doRequest(t, app, tokenFor(t, testCompanyID, true, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

// Caso 2: un usuario común bloqueado en ruta admin → HTTP 403.
func TestRequireAdmin_UsuarioComunBloqueado(t *testing.T) {
	app := buildTestApp(apphttp.RequireAdmin())
	resp := doRequest(t, app, tokenFor(t, testCompanyID, false, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"usuario sin flag admin no debe acceder a ruta admin")
}

// Caso 3: una sesión master pasa RequireAdmin (master administra todo).
func TestRequireAdmin_MasterAccede(t *testing.T) {
	app := buildTestApp(apphttp.RequireAdmin())
	resp := doRequest(t, app, tokenFor(t, "", false, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: un admin de tenant bloqueado en ruta master → HTTP 403.
func TestRequireMaster_AdminDeTenantBloqueado(t *testing.T) {
	app := buildTestApp(apphttp.RequireMaster())
	resp := doRequest(t, app, tokenFor(t, testCompanyID, true, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"admin de tenant no debe acceder al directorio de empresas")
}

func TestRequireMaster_MasterAccede(t *testing.T) {
	app := buildTestApp(apphttp.RequireMaster())
	resp := doRequest(t, app, tokenFor(t, "", false, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 5: master bloqueado en rutas de inventario (no posee datos de tenant).
func TestRequireTenant_MasterBloqueado(t *testing.T) {
	app := buildTestApp(apphttp.RequireTenant())
	resp := doRequest(t, app, tokenFor(t, "", false, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"sesión master no debe acceder a rutas de inventario del tenant")
}

func TestRequireTenant_UsuarioDeTenantAccede(t *testing.T) {
	app := buildTestApp(apphttp.RequireTenant())
	resp := doRequest(t, app, tokenFor(t, testCompanyID, false, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, true, false, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsMaster)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, true, false, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, true, false, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

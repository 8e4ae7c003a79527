package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	apphttp "github.com/stockfacil/kiosco-pos/internal/interfaces/http"
	pkgjwt "github.com/stockfacil/kiosco-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "kiosco-pos-test"
	testExpMin    = 60
)

// fakeResolver resuelve la identidad en memoria, como lo haría el caso de uso
// de auth contra la base.
type fakeResolver struct {
	contexts map[string]domain.Context
}

func (r *fakeResolver) Resolve(_ context.Context, userID string) (domain.Context, error) {
	dctx, ok := r.contexts[userID]
	if !ok {
		return domain.Context{}, domain.ErrNoProfile
	}
	return dctx, nil
}

// buildTestApp construye una app Fiber mínima con AuthMiddleware +
// ContextMiddleware y un handler dummy que devuelve la identidad resuelta.
func buildTestApp(resolver apphttp.IdentityResolver) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.ContextMiddleware(resolver),
		func(c *fiber.Ctx) error {
			dctx := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{"tenantId": dctx.TenantID, "role": string(dctx.Role)})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Claims{UserID: userID}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader, origin string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware + ContextMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SinToken(t *testing.T) {
	app := buildTestApp(&fakeResolver{})
	resp := doRequest(t, app, "/protected", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_FormatoInvalido(t *testing.T) {
	app := buildTestApp(&fakeResolver{})
	resp := doRequest(t, app, "/protected", "Token abc123", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_FirmaInvalida(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", pkgjwt.Claims{UserID: testUserID}, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(&fakeResolver{})
	resp := doRequest(t, app, "/protected", "Bearer "+tok, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// La identidad efectiva sale del resolver, no del token: aunque el token
// declare otro tenant, el contexto es el resuelto por el servidor.
func TestAuth_IdentidadResueltaEnServidor(t *testing.T) {
	resolver := &fakeResolver{contexts: map[string]domain.Context{
		testUserID: {UserID: testUserID, TenantID: testTenantID, Role: entity.RoleOwner},
	}}
	app := buildTestApp(resolver)

	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Claims{
		UserID:   testUserID,
		TenantID: "tenant-falsificado",
		Role:     "owner",
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Token válido pero sin perfil en la base: 404, no hay identidad que resolver.
func TestAuth_SinPerfil(t *testing.T) {
	app := buildTestApp(&fakeResolver{contexts: map[string]domain.Context{}})
	resp := doRequest(t, app, "/protected", tokenFor(t, testUserID), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests OriginGuard
// ──────────────────────────────────────────────────────────────────────────────

func buildOriginApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.OriginGuard([]string{"https://admin.stockfacil.com.ar"}))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func TestOriginGuard_OrigenPermitido(t *testing.T) {
	app := buildOriginApp()
	resp := doRequest(t, app, "/ping", "", "https://admin.stockfacil.com.ar")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://admin.stockfacil.com.ar", resp.Header.Get("Access-Control-Allow-Origin"))
}

// El rechazo llega antes de ejecutar lógica alguna.
func TestOriginGuard_OrigenAjeno(t *testing.T) {
	app := buildOriginApp()
	resp := doRequest(t, app, "/ping", "", "https://malicioso.example.com")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Requests sin Origin (curl, server-to-server) no pasan por CORS.
func TestOriginGuard_SinOrigin(t *testing.T) {
	app := buildOriginApp()
	resp := doRequest(t, app, "/ping", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

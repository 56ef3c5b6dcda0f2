package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	apphttp "github.com/jhoicas/ik-portal/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ik-portal/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test yardımcıları
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testCompanyID  = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "ik-portal-test"
	testTTL        = time.Hour
	testCookieName = "ik_session"
)

// sessionStore token sahiplerini tutan bellek içi kullanıcı deposu.
type sessionStore map[string]*entity.User

func (s sessionStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s[id], nil
}

func userIDFor(role string) string { return "u-" + role }

// testUsers her rol için aktif bir kullanıcı içerir; "" rolsüz kayıttır.
var testUsers = func() sessionStore {
	s := sessionStore{}
	for _, r := range []string{"", entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleHRManager, entity.RoleManager, entity.RoleEmployee} {
		s[userIDFor(r)] = &entity.User{ID: userIDFor(r), CompanyID: testCompanyID, Role: r, Status: entity.UserActive}
	}
	return s
}()

// buildTestApp AuthMiddleware + RequireRole + 200 dönen sahte handler.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName, testUsers),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return tokenFor(t, userIDFor(role), role)
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	sess, err := pkgjwt.Issue(testJWTSecret, testIssuer, pkgjwt.Identity{UserID: userID, CompanyID: testCompanyID, Role: role}, testTTL)
	require.NoError(t, err, "geçerli token üretilmeli")
	return sess.Token
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
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminErisir(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_CokluRol(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleHRManager)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleHRManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmployeeEngellenir(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenForRole(t, entity.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_RolsuzKullanici401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, userIDFor(""), entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_BasliksizIstek401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_GecersizToken401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer token.gecersiz.burada")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BozukBaslik401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: claim'ler ve çerez
// ──────────────────────────────────────────────────────────────────────────────

func claimsApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testCookieName, testUsers), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	return app
}

func TestAuthMiddleware_ClaimleriYazar(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleHRManager))
	resp, err := claimsApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userIDFor(entity.RoleHRManager), body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleHRManager, body["role"])
}

func TestAuthMiddleware_CerezdenOkur(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: tokenForRole(t, entity.RoleEmployee)})
	resp, err := claimsApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RoleEmployee, body["role"])
}

func TestOptionalAuth_TokensizGecer(t *testing.T) {
	app := fiber.New()
	app.Get("/opt", apphttp.OptionalAuth(testJWTSecret, testCookieName, testUsers), func(c *fiber.Ctx) error {
		return c.SendString("anon:" + apphttp.GetUserID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/opt", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anon:", string(body))

	req := httptest.NewRequest(http.MethodGet, "/opt", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleAdmin))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "anon:"+userIDFor(entity.RoleAdmin), string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission(t *testing.T) {
	app := fiber.New()
	app.Get("/payroll",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName, testUsers),
		apphttp.RequirePermission(entity.PermPayrollWrite),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	cases := map[string]int{
		entity.RoleAdmin:     http.StatusOK,
		entity.RoleHRManager: http.StatusOK,
		entity.RoleManager:   http.StatusForbidden,
		entity.RoleEmployee:  http.StatusForbidden,
	}
	for role, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/payroll", nil)
		req.Header.Set("Authorization", "Bearer "+tokenForRole(t, role))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: oturumun veritabanı kaydıyla doğrulanması
// ──────────────────────────────────────────────────────────────────────────────

func sessionApp(users sessionStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName, users),
		apphttp.RequirePermission(entity.PermEmployeesWrite),
		func(c *fiber.Ctx) error { return c.SendString(apphttp.GetRole(c)) },
	)
	return app
}

func TestAuthMiddleware_OturumKaydiKontrolEdilir(t *testing.T) {
	users := sessionStore{
		"u-aktif":   {ID: "u-aktif", CompanyID: testCompanyID, Role: entity.RoleAdmin, Status: entity.UserActive},
		"u-pasif":   {ID: "u-pasif", CompanyID: testCompanyID, Role: entity.RoleAdmin, Status: entity.UserInactive},
		"u-askida":  {ID: "u-askida", CompanyID: testCompanyID, Role: entity.RoleAdmin, Status: entity.UserSuspended},
		"u-tasindi": {ID: "u-tasindi", CompanyID: "baska-sirket", Role: entity.RoleAdmin, Status: entity.UserActive},
	}
	cases := map[string]int{
		"u-aktif":   http.StatusOK,
		"u-pasif":   http.StatusUnauthorized,
		"u-askida":  http.StatusUnauthorized,
		"u-tasindi": http.StatusUnauthorized,
		"u-silindi": http.StatusUnauthorized,
	}
	app := sessionApp(users)
	for userID, want := range cases {
		resp := doRequest(t, app, "Bearer "+tokenFor(t, userID, entity.RoleAdmin))
		assert.Equal(t, want, resp.StatusCode, userID)
		if want == http.StatusUnauthorized {
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "SESSION_REVOKED", userID)
		}
		resp.Body.Close()
	}
}

func TestAuthMiddleware_RolKayittanOkunur(t *testing.T) {
	users := sessionStore{
		"u-1": {ID: "u-1", CompanyID: testCompanyID, Role: entity.RoleEmployee, Status: entity.UserActive},
	}
	// Token admin olarak verildi, kullanıcı sonradan çalışana düşürüldü.
	resp := doRequest(t, sessionApp(users), "Bearer "+tokenFor(t, "u-1", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOptionalAuth_PasifKullaniciAnonimKalir(t *testing.T) {
	users := sessionStore{
		"u-pasif": {ID: "u-pasif", CompanyID: testCompanyID, Role: entity.RoleAdmin, Status: entity.UserInactive},
	}
	app := fiber.New()
	app.Get("/opt", apphttp.OptionalAuth(testJWTSecret, testCookieName, users), func(c *fiber.Ctx) error {
		return c.SendString("anon:" + apphttp.GetUserID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/opt", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "u-pasif", entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anon:", string(body))
}

package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: ad zorunlu", domain.ErrInvalidInput), 400, "VALIDATION"},
		{domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{domain.ErrForbidden, 403, "FORBIDDEN"},
		{domain.ErrModuleDisabled, 403, "MODULE_DISABLED"},
		{domain.ErrNotFound, 404, "NOT_FOUND"},
		{domain.ErrUserNotFound, 404, "NOT_FOUND"},
		{fmt.Errorf("%w: sicil no", domain.ErrDuplicate), 409, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, 409, "DUPLICATE"},
		{domain.ErrLeaveOverlap, 409, "CONFLICT"},
		{domain.ErrConflict, 409, "CONFLICT"},
		{fmt.Errorf("%w: taslak değil", domain.ErrInvalidTransition), 422, "INVALID_TRANSITION"},
		{domain.ErrInsufficientLeaveBalance, 422, "INSUFFICIENT_BALANCE"},
		{errors.New("pgx: bağlantı koptu"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestWriteError_500AyrintiGizlenir(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, errors.New("select employees: gizli ayrıntı"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "gizli")
	assert.Contains(t, string(body), "INTERNAL")
}

func TestErrorHandler_FiberHatasi(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/var", func(c *fiber.Ctx) error { return nil })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/yok", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"code":"NOT_FOUND"`)
}

type fakeModules struct {
	active bool
	err    error
}

func (f fakeModules) HasActiveModule(context.Context, string, string) (bool, error) {
	return f.active, f.err
}

func TestRequireModule(t *testing.T) {
	build := func(checker moduleChecker, companyID string) *fiber.App {
		app := fiber.New()
		app.Get("/leaves",
			func(c *fiber.Ctx) error {
				c.Locals(LocalCompanyID, companyID)
				return c.Next()
			},
			RequireModule("leave", checker),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
		)
		return app
	}
	cases := []struct {
		name    string
		checker moduleChecker
		company string
		want    int
	}{
		{"aktif", fakeModules{active: true}, "c1", http.StatusOK},
		{"kapali", fakeModules{active: false}, "c1", http.StatusForbidden},
		{"sorgu hatasi", fakeModules{err: errors.New("db")}, "c1", http.StatusServiceUnavailable},
		{"sirketsiz", fakeModules{active: true}, "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := build(tc.checker, tc.company).Test(httptest.NewRequest(http.MethodGet, "/leaves", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/login", RateLimit(2), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	var last int
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

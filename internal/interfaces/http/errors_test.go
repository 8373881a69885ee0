package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
)

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{fmt.Errorf("%w: sku requerido", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("%w: ventana", domain.ErrInvalidCondition), http.StatusBadRequest, "INVALID_CONDITION"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrCategoryCycle, http.StatusConflict, "CATEGORY_CYCLE"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("pgx: conexión rechazada"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })

		resp, rerr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, rerr)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Contains(t, string(body), tc.code)
	}
}

func TestWriteError_NoFiltraErroresInternos(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, errors.New("password=secreto")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "secreto")
}

func TestWriteError_MensajeVerbatimDeProducto(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, domain.ErrProductNotFound) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Product not found")
}

func TestMetrics_UsaPlantillaDeRuta(t *testing.T) {
	var (
		gotRoute  string
		gotStatus int
	)
	app := fiber.New()
	app.Use(Metrics(func(method, route string, status int, _ time.Duration) {
		gotRoute, gotStatus = route, status
	}, nil))
	app.Get("/api/stores/:storeId/products/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stores/s1/products/p9", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/api/stores/:storeId/products/:id", gotRoute)
	assert.Equal(t, fiber.StatusTeapot, gotStatus)
}

func TestMetrics_ErrorDeHandlerSeMide(t *testing.T) {
	var gotStatus int
	app := fiber.New()
	app.Use(Metrics(func(_, _ string, status int, _ time.Duration) { gotStatus = status }, nil))
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.ErrBadGateway })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusBadGateway, gotStatus)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestPagination_AcotaLimitYOffset(t *testing.T) {
	cases := []struct {
		query         string
		limit, offset int
	}{
		{"", 50, 0},
		{"?limit=10&offset=20", 10, 20},
		{"?limit=0", 50, 0},
		{"?limit=500", 200, 0},
		{"?offset=-5", 50, 0},
		{"?limit=abc", 50, 0},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			limit, offset := pagination(c, 50, 200)
			return c.JSON(fiber.Map{"limit": limit, "offset": offset})
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tc.query, nil), -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.JSONEq(t, fmt.Sprintf(`{"limit":%d,"offset":%d}`, tc.limit, tc.offset), string(body), tc.query)
	}
}

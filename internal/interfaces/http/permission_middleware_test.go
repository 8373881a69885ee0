package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
	apphttp "github.com/jhoicas/Estoque-api/internal/interfaces/http"
)

type checkCall struct {
	userID, action, resource, storeID string
}

type fakeChecker struct {
	mu       sync.Mutex
	decision domperm.Decision
	err      error
	calls    []checkCall
}

func (f *fakeChecker) Check(_ context.Context, userID, action, resource, storeID string) (domperm.Decision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, checkCall{userID, action, resource, storeID})
	return f.decision, f.err
}

func (f *fakeChecker) last() checkCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func permApp(checker *fakeChecker) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"store_id": apphttp.GetStoreID(c)})
	}
	mw := apphttp.RequirePermission(domperm.ActionReadProduct, checker, nil)
	app.Get("/stores/:storeId/products/:id", apphttp.AuthMiddleware(testJWTSecret), mw, ok)
	app.Get("/products", apphttp.AuthMiddleware(testJWTSecret), mw, ok)
	return app
}

func get(t *testing.T, app *fiber.App, target string, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", tokenForRoles(t, "USER"))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func TestRequirePermission_Permitido(t *testing.T) {
	checker := &fakeChecker{decision: domperm.Decision{Allowed: true, Rule: domperm.RuleStoreRole}}
	resp, body := get(t, permApp(checker), "/stores/s1/products/p1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"store_id":"s1"`)
	assert.Equal(t, checkCall{testUserID, domperm.ActionReadProduct, "p1", "s1"}, checker.last())
}

func TestRequirePermission_DenegadoIncluyeRegla(t *testing.T) {
	checker := &fakeChecker{decision: domperm.Decision{Allowed: false, Rule: domperm.RuleUserDeny}}
	resp, body := get(t, permApp(checker), "/stores/s1/products/p1", nil)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "USER_DENY")
}

func TestRequirePermission_ErrorDeCargaEs503(t *testing.T) {
	checker := &fakeChecker{err: errors.New("db caída")}
	resp, body := get(t, permApp(checker), "/stores/s1/products/p1", nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "PERMISSION_CHECK_FAILED")
}

func TestRequirePermission_UsuarioBorradoEs401(t *testing.T) {
	checker := &fakeChecker{err: domain.ErrUserNotFound}
	resp, _ := get(t, permApp(checker), "/stores/s1/products/p1", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_UsuarioSuspendidoEs401(t *testing.T) {
	checker := &fakeChecker{err: domain.ErrUnauthorized}
	resp, _ := get(t, permApp(checker), "/stores/s1/products/p1", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_TiendaDesdeQueryYHeader(t *testing.T) {
	checker := &fakeChecker{decision: domperm.Decision{Allowed: true}}
	app := permApp(checker)

	_, _ = get(t, app, "/products?store_id=q1", map[string]string{"X-Store-ID": "h1"})
	assert.Equal(t, "q1", checker.last().storeID, "el query tiene prioridad sobre el header")

	_, _ = get(t, app, "/products", map[string]string{"X-Store-ID": "h1"})
	assert.Equal(t, "h1", checker.last().storeID)

	_, _ = get(t, app, "/stores/p1/products/x?store_id=q1", nil)
	assert.Equal(t, "p1", checker.last().storeID, "el parámetro de ruta tiene prioridad")

	_, _ = get(t, app, "/products", nil)
	assert.Equal(t, "", checker.last().storeID)
}

package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

const storeA = "store-a"

func TestGetCurrentStock_LibroVacioEsCero(t *testing.T) {
	uc := inventory.NewStockUseCase(newFakeProducts(product("p1", storeA, 10, 50)), &fakeMovements{}, nil, nil)

	got, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CurrentStock)
	assert.False(t, got.NegativeStockDetected)
}

func TestGetCurrentStock_SumaConSigno(t *testing.T) {
	movs := &fakeMovements{list: []*entity.Movement{
		mov("m1", "p1", storeA, entity.MovementEntrada, 20),
		mov("m2", "p1", storeA, entity.MovementSaida, 5),
		mov("m3", "p1", storeA, entity.MovementPerda, 2),
		mov("m4", "p1", "store-b", entity.MovementEntrada, 100),
	}}
	uc := inventory.NewStockUseCase(newFakeProducts(product("p1", storeA, 10, 50)), movs, nil, nil)

	got, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	require.NoError(t, err)
	assert.Equal(t, int64(13), got.CurrentStock)

	all, err := uc.GetCurrentStock(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(113), all.CurrentStock, "sin tienda se suman todas")
}

func TestGetCurrentStock_IgnoraCancelados(t *testing.T) {
	cancelled := mov("m2", "p1", storeA, entity.MovementSaida, 8)
	cancelled.Cancelled = true
	movs := &fakeMovements{list: []*entity.Movement{mov("m1", "p1", storeA, entity.MovementEntrada, 10), cancelled}}
	uc := inventory.NewStockUseCase(newFakeProducts(product("p1", storeA, 0, 0)), movs, nil, nil)

	got, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.CurrentStock)
}

func TestGetCurrentStock_NegativoSeRecortaYSeReporta(t *testing.T) {
	movs := &fakeMovements{list: []*entity.Movement{
		mov("m1", "p1", storeA, entity.MovementEntrada, 3),
		mov("m2", "p1", storeA, entity.MovementSaida, 7),
	}}
	var buf bytes.Buffer
	obs := &countingObserver{}
	uc := inventory.NewStockUseCase(newFakeProducts(product("p1", storeA, 0, 0)), movs,
		logger.FromZerolog(zerolog.New(&buf)), obs)

	got, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CurrentStock)
	assert.True(t, got.NegativeStockDetected)
	assert.Equal(t, 1, obs.negative)
	assert.Contains(t, buf.String(), `"raw_balance":-4`)
}

func TestGetCurrentStock_ProductoInexistente(t *testing.T) {
	uc := inventory.NewStockUseCase(newFakeProducts(), &fakeMovements{}, nil, nil)

	_, err := uc.GetCurrentStock(context.Background(), "nope", storeA)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, "Product not found", err.Error())
}

func TestGetCurrentStock_PropagaErrorDeAlmacenamiento(t *testing.T) {
	boom := errors.New("conexión perdida")
	uc := inventory.NewStockUseCase(newFakeProducts(product("p1", storeA, 0, 0)), &fakeMovements{err: boom}, nil, nil)

	_, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	assert.ErrorIs(t, err, boom)
}

func TestGetCurrentStock_LecturasIdempotentes(t *testing.T) {
	movs := &fakeMovements{list: []*entity.Movement{mov("m1", "p1", storeA, entity.MovementEntrada, 9)}}
	uc := inventory.NewStockUseCase(newFakeProducts(product("p1", storeA, 0, 0)), movs, nil, nil)

	a, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	require.NoError(t, err)
	b, err := uc.GetCurrentStock(context.Background(), "p1", storeA)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ─────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ─────────────────────────────────────────────────────────────────────────────

func TestGetLowStockProducts_ClasificaYOrdena(t *testing.T) {
	inactive := product("p5", storeA, 10, 50)
	inactive.Status = entity.ProductStatusInactive
	products := newFakeProducts(
		product("p1", storeA, 10, 50), // umbral 5, stock 5 → LOW
		product("p2", storeA, 10, 50), // stock 6 → OK
		product("p3", storeA, 10, 50), // sin movimientos → OUT
		product("p4", storeA, 20, 25), // umbral 5, stock 2 → LOW
		inactive,                      // inactivo: no aparece
		product("p6", "store-b", 10, 50),
	)
	movs := &fakeMovements{list: []*entity.Movement{
		mov("m1", "p1", storeA, entity.MovementEntrada, 5),
		mov("m2", "p2", storeA, entity.MovementEntrada, 6),
		mov("m3", "p4", storeA, entity.MovementEntrada, 4),
		mov("m4", "p4", storeA, entity.MovementPerda, 2),
	}}
	uc := inventory.NewStockUseCase(products, movs, nil, nil)

	items, err := uc.GetLowStockProducts(context.Background(), storeA)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "p3", items[0].ProductID)
	assert.Equal(t, "OUT_OF_STOCK", items[0].Status)
	assert.Equal(t, "p4", items[1].ProductID)
	assert.Equal(t, "LOW_STOCK", items[1].Status)
	assert.Equal(t, int64(5), items[1].AlertThreshold)
	assert.Equal(t, "p1", items[2].ProductID)
	assert.Equal(t, int64(5), items[2].CurrentStock)
}

func TestGetLowStockProducts_TodasLasTiendas(t *testing.T) {
	products := newFakeProducts(product("p1", storeA, 10, 50), product("p2", "store-b", 10, 50))
	uc := inventory.NewStockUseCase(products, &fakeMovements{}, nil, nil)

	items, err := uc.GetLowStockProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGetLowStockProducts_SinProductosListaVacia(t *testing.T) {
	uc := inventory.NewStockUseCase(newFakeProducts(), &fakeMovements{}, nil, nil)

	items, err := uc.GetLowStockProducts(context.Background(), storeA)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetLowStockProducts_PropagaError(t *testing.T) {
	boom := errors.New("timeout")
	products := newFakeProducts()
	products.err = boom
	uc := inventory.NewStockUseCase(products, &fakeMovements{}, nil, nil)

	_, err := uc.GetLowStockProducts(context.Background(), storeA)
	assert.ErrorIs(t, err, boom)
}

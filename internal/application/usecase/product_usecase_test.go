package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

const store1 = "store-1"

type productFixture struct {
	uc         *usecase.ProductUseCase
	products   *memProducts
	categories *memCategories
	suppliers  *memSuppliers
	movs       *memMovements
}

func newProductFixture() productFixture {
	f := productFixture{
		products:   newMemProducts(),
		categories: newMemCategories(),
		suppliers:  newMemSuppliers(),
		movs:       &memMovements{},
	}
	f.categories.byID["cat-1"] = &entity.Category{ID: "cat-1", StoreID: store1, Name: "Bebidas", NameKey: "bebidas"}
	f.categories.byID["cat-x"] = &entity.Category{ID: "cat-x", StoreID: "store-2", Name: "Otra", NameKey: "otra"}
	f.suppliers.byID["sup-1"] = &entity.Supplier{ID: "sup-1", StoreID: store1, Name: "Distribuidora"}
	f.uc = usecase.NewProductUseCase(f.products, f.categories, f.suppliers, f.movs)
	return f
}

func validProduct() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:             "CAFE-500",
		Name:            "Café 500g",
		CategoryIDs:     []string{"cat-1", "cat-1"},
		StockMin:        10,
		StockMax:        100,
		AlertPercentage: 50,
		ReferencePrice:  decimal.RequireFromString("18.90"),
	}
}

func TestProductCreate(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), store1, validProduct())
	require.NoError(t, err)
	assert.Equal(t, store1, out.StoreID)
	assert.Equal(t, []string{"cat-1"}, out.CategoryIDs, "sin repetidos")
	assert.Equal(t, "UN", out.UnitOfMeasure)
	assert.Equal(t, int64(0), out.CurrentStock)
	assert.Equal(t, "OUT_OF_STOCK", out.StockStatus)
	assert.Equal(t, entity.ProductStatusActive, out.Status)

	_, err = f.uc.Create(context.Background(), store1, validProduct())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validaciones(t *testing.T) {
	f := newProductFixture()
	otherSupplier := "sup-404"

	mutations := map[string]func(*dto.CreateProductRequest){
		"sin sku":               func(r *dto.CreateProductRequest) { r.SKU = " " },
		"max menor que min":     func(r *dto.CreateProductRequest) { r.StockMax = 5 },
		"porcentaje > 100":      func(r *dto.CreateProductRequest) { r.AlertPercentage = 101 },
		"precio negativo":       func(r *dto.CreateProductRequest) { r.ReferencePrice = decimal.NewFromInt(-1) },
		"categoría ajena":       func(r *dto.CreateProductRequest) { r.CategoryIDs = []string{"cat-x"} },
		"proveedor inexistente": func(r *dto.CreateProductRequest) { r.SupplierID = &otherSupplier },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validProduct()
			mutate(&in)
			_, err := f.uc.Create(context.Background(), store1, in)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, f.products.byID)
}

func TestProductGetByID_IncluyeStockDerivado(t *testing.T) {
	f := newProductFixture()
	p, err := f.uc.Create(context.Background(), store1, validProduct())
	require.NoError(t, err)
	f.movs.list = append(f.movs.list,
		&entity.Movement{ProductID: p.ID, StoreID: store1, Type: entity.MovementEntrada, Quantity: 8},
		&entity.Movement{ProductID: p.ID, StoreID: store1, Type: entity.MovementSaida, Quantity: 3},
	)

	out, err := f.uc.GetByID(context.Background(), store1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.CurrentStock)
	assert.Equal(t, "LOW_STOCK", out.StockStatus)

	list, err := f.uc.List(context.Background(), store1, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(5), list.Items[0].CurrentStock)
}

func TestProductGetByID_OtraTiendaEsNotFound(t *testing.T) {
	f := newProductFixture()
	p, err := f.uc.Create(context.Background(), store1, validProduct())
	require.NoError(t, err)

	_, err = f.uc.GetByID(context.Background(), "store-2", p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = f.uc.GetByID(context.Background(), store1, "missing")
	assert.EqualError(t, err, "Product not found")
}

func TestProductUpdate(t *testing.T) {
	f := newProductFixture()
	p, err := f.uc.Create(context.Background(), store1, validProduct())
	require.NoError(t, err)

	name := "Café Especial"
	pct := int64(20)
	supplier := "sup-1"
	out, err := f.uc.Update(context.Background(), store1, p.ID, dto.UpdateProductRequest{
		Name: &name, AlertPercentage: &pct, SupplierID: &supplier,
	})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, int64(20), out.AlertPercentage)
	require.NotNil(t, out.SupplierID)

	bad := int64(1)
	_, err = f.uc.Update(context.Background(), store1, p.ID, dto.UpdateProductRequest{StockMax: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_Desactiva(t *testing.T) {
	f := newProductFixture()
	p, err := f.uc.Create(context.Background(), store1, validProduct())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), store1, p.ID))
	assert.Equal(t, entity.ProductStatusInactive, f.products.byID[p.ID].Status)
}

package inventory

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/Estoque-api/internal/application/inventory")

// StockUseCase consultas de stock derivadas del libro de movimientos.
// El stock nunca se lee de una columna: siempre se reconstruye sumando movimientos.
type StockUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	log         *logger.Logger
	obs         Observer
}

// NewStockUseCase construye el caso de uso. log y obs pueden ser nil.
func NewStockUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	log *logger.Logger,
	obs Observer,
) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &StockUseCase{productRepo: productRepo, movRepo: movRepo, log: log, obs: obs}
}

// GetCurrentStock devuelve el stock actual de un producto. storeID vacío suma todas las tiendas.
// Producto inexistente → domain.ErrProductNotFound; errores de almacenamiento se propagan tal cual.
func (uc *StockUseCase) GetCurrentStock(ctx context.Context, productID, storeID string) (*dto.StockBalanceResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory.GetCurrentStock")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productID), attribute.String("store_id", storeID))

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	entries, err := uc.movRepo.LedgerEntries(ctx, product.ID, storeID)
	if err != nil {
		return nil, err
	}
	bal := ledger.Fold(entries)
	uc.reportNegative(product.ID, storeID, bal)

	return &dto.StockBalanceResponse{
		ProductID:             product.ID,
		StoreID:               storeID,
		CurrentStock:          bal.Stock,
		NegativeStockDetected: bal.NegativeStockDetected,
	}, nil
}

// GetLowStockProducts lista los productos activos en OUT_OF_STOCK o LOW_STOCK, ordenados por
// stock ascendente (más urgente primero). storeID vacío considera todas las tiendas.
func (uc *StockUseCase) GetLowStockProducts(ctx context.Context, storeID string) ([]dto.LowStockItemResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory.GetLowStockProducts")
	defer span.End()
	span.SetAttributes(attribute.String("store_id", storeID))

	products, err := uc.productRepo.ListActive(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.LowStockItemResponse{}, nil
	}
	byProduct, err := uc.movRepo.LedgerEntriesByProduct(ctx, storeID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItemResponse, 0)
	for _, p := range products {
		bal := ledger.Fold(byProduct[p.ID])
		uc.reportNegative(p.ID, storeID, bal)

		threshold := ledger.AlertThreshold(p.StockMin, p.AlertPercentage)
		status := ledger.Classify(bal.Stock, threshold)
		if !status.Flagged() {
			continue
		}
		items = append(items, dto.LowStockItemResponse{
			ProductID:             p.ID,
			StoreID:               p.StoreID,
			SKU:                   p.SKU,
			Name:                  p.Name,
			CurrentStock:          bal.Stock,
			StockMin:              p.StockMin,
			AlertPercentage:       p.AlertPercentage,
			AlertThreshold:        threshold,
			Status:                string(status),
			NegativeStockDetected: bal.NegativeStockDetected,
		})
	}

	// Empates por nombre e ID para que el orden sea estable entre llamadas.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ProductID < b.ProductID
	})
	span.SetAttributes(attribute.Int("items", len(items)))
	return items, nil
}

func (uc *StockUseCase) reportNegative(productID, storeID string, bal ledger.Balance) {
	if !bal.NegativeStockDetected {
		return
	}
	uc.obs.ObserveNegativeStock()
	uc.log.Warn().
		Str("product_id", productID).
		Str("store_id", storeID).
		Int64("raw_balance", bal.Raw).
		Msg("libro de movimientos con saldo negativo; stock recortado a 0")
}

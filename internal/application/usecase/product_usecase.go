package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

const defaultUnitOfMeasure = "UN"

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos y
// se incluye en las respuestas derivándolo del libro.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	movRepo      repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	movRepo repository.MovementRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo, movRepo: movRepo}
}

// Create crea un producto en la tienda. SKU duplicado en la tienda → domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, storeID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateStockLevels(in.StockMin, in.StockMax, in.AlertPercentage); err != nil {
		return nil, err
	}
	if in.ReferencePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByStoreAndSKU(ctx, storeID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkSupplier(ctx, storeID, in.SupplierID); err != nil {
		return nil, err
	}
	categoryIDs, err := uc.checkCategories(ctx, storeID, in.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if in.UnitOfMeasure == "" {
		in.UnitOfMeasure = defaultUnitOfMeasure
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		StoreID:         storeID,
		SupplierID:      nilIfEmpty(in.SupplierID),
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		CategoryIDs:     categoryIDs,
		StockMin:        in.StockMin,
		StockMax:        in.StockMax,
		AlertPercentage: in.AlertPercentage,
		UnitOfMeasure:   in.UnitOfMeasure,
		ReferencePrice:  in.ReferencePrice,
		Status:          entity.ProductStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, ledger.Balance{}), nil
}

// GetByID obtiene un producto de la tienda con su stock actual.
// Producto inexistente o de otra tienda → domain.ErrProductNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, storeID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	entries, err := uc.movRepo.LedgerEntries(ctx, product.ID, product.StoreID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, ledger.Fold(entries)), nil
}

// Update actualiza un producto. No permite modificar el stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, storeID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SupplierID != nil {
		if err := uc.checkSupplier(ctx, storeID, in.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = nilIfEmpty(in.SupplierID)
	}
	if in.CategoryIDs != nil {
		ids, err := uc.checkCategories(ctx, storeID, in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		product.CategoryIDs = ids
	}
	if in.StockMin != nil {
		product.StockMin = *in.StockMin
	}
	if in.StockMax != nil {
		product.StockMax = *in.StockMax
	}
	if in.AlertPercentage != nil {
		product.AlertPercentage = *in.AlertPercentage
	}
	if err := validateStockLevels(product.StockMin, product.StockMax, product.AlertPercentage); err != nil {
		return nil, err
	}
	if in.UnitOfMeasure != nil && *in.UnitOfMeasure != "" {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.ReferencePrice != nil {
		if in.ReferencePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.ReferencePrice = *in.ReferencePrice
	}
	if in.Status != nil {
		if *in.Status != entity.ProductStatusActive && *in.Status != entity.ProductStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	entries, err := uc.movRepo.LedgerEntries(ctx, product.ID, product.StoreID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, ledger.Fold(entries)), nil
}

// List lista productos de la tienda con paginación y stock actual.
func (uc *ProductUseCase) List(ctx context.Context, storeID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	byProduct, err := uc.movRepo.LedgerEntriesByProduct(ctx, storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, ledger.Fold(byProduct[p.ID])))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete desactiva el producto: los movimientos lo siguen referenciando, así que no se borra.
func (uc *ProductUseCase) Delete(ctx context.Context, storeID, id string) error {
	product, err := uc.get(ctx, storeID, id)
	if err != nil {
		return err
	}
	return uc.repo.SetStatus(ctx, product.ID, entity.ProductStatusInactive)
}

func (uc *ProductUseCase) get(ctx context.Context, storeID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || (storeID != "" && product.StoreID != storeID) {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) checkSupplier(ctx context.Context, storeID string, supplierID *string) error {
	if supplierID == nil || *supplierID == "" {
		return nil
	}
	s, err := uc.supplierRepo.GetByID(ctx, *supplierID)
	if err != nil {
		return err
	}
	if s == nil || s.StoreID != storeID {
		return domain.ErrNotFound
	}
	return nil
}

// checkCategories valida que existan en la tienda y elimina repetidos conservando el orden.
func (uc *ProductUseCase) checkCategories(ctx context.Context, storeID string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		c, err := uc.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil || c.StoreID != storeID {
			return nil, domain.ErrNotFound
		}
		out = append(out, id)
	}
	return out, nil
}

func validateStockLevels(stockMin, stockMax, alertPercentage int64) error {
	if stockMin < 0 || stockMax < 0 || alertPercentage < 0 || alertPercentage > 100 {
		return domain.ErrInvalidInput
	}
	if stockMax > 0 && stockMax < stockMin {
		return domain.ErrInvalidInput
	}
	return nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func toProductResponse(p *entity.Product, bal ledger.Balance) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	categoryIDs := p.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		StoreID:         p.StoreID,
		SupplierID:      p.SupplierID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		CategoryIDs:     categoryIDs,
		StockMin:        p.StockMin,
		StockMax:        p.StockMax,
		AlertPercentage: p.AlertPercentage,
		UnitOfMeasure:   p.UnitOfMeasure,
		ReferencePrice:  p.ReferencePrice,
		Status:          p.Status,
		CurrentStock:    bal.Stock,
		StockStatus:     string(ledger.Classify(bal.Stock, ledger.AlertThreshold(p.StockMin, p.AlertPercentage))),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

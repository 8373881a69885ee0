package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/normalize"
)

// Estados de proveedor.
const (
	supplierActive   = "active"
	supplierInactive = "inactive"
)

// SupplierUseCase CRUD de proveedores por tienda.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. Nombre repetido en la tienda (sin tildes/mayúsculas) → domain.ErrDuplicate.
func (uc *SupplierUseCase) Create(ctx context.Context, storeID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	key := normalize.Key(name)
	existing, err := uc.repo.GetByStoreAndKey(ctx, storeID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Name:      name,
		NameKey:   key,
		Document:  strings.TrimSpace(in.Document),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Status:    supplierActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Get obtiene un proveedor de la tienda.
func (uc *SupplierUseCase) Get(ctx context.Context, storeID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, storeID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	key := normalize.Key(name)
	existing, err := uc.repo.GetByStoreAndKey(ctx, storeID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != s.ID {
		return nil, domain.ErrDuplicate
	}
	switch in.Status {
	case "":
	case supplierActive, supplierInactive:
		s.Status = in.Status
	default:
		return nil, domain.ErrInvalidInput
	}
	s.Name = name
	s.NameKey = key
	s.Document = strings.TrimSpace(in.Document)
	s.Email = strings.TrimSpace(in.Email)
	s.Phone = strings.TrimSpace(in.Phone)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Deactivate marca el proveedor como inactivo (los movimientos lo siguen referenciando).
func (uc *SupplierUseCase) Deactivate(ctx context.Context, storeID, id string) error {
	s, err := uc.get(ctx, storeID, id)
	if err != nil {
		return err
	}
	s.Status = supplierInactive
	s.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, s)
}

// List lista proveedores de la tienda con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, storeID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *SupplierUseCase) get(ctx context.Context, storeID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		StoreID:   s.StoreID,
		Name:      s.Name,
		Document:  s.Document,
		Email:     s.Email,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

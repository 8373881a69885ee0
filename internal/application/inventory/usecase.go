package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// Límites de paginación para ListMovements.
const (
	defaultMovementLimit = 50
	maxMovementLimit     = 200
)

// RegisterMovementUseCase registra movimientos en el libro de forma transaccional.
// Dentro de la tx toma un advisory lock por producto+tienda, recalcula el saldo y hace append.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	movRepo      repository.MovementRepository
	log          *logger.Logger
	obs          Observer
	now          func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. log y obs pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	movRepo repository.MovementRepository,
	log *logger.Logger,
	obs Observer,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		movRepo:      movRepo,
		log:          log,
		obs:          obs,
		now:          time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// StoreID vacío usa la tienda dueña del producto.
type MovementInputDTO struct {
	StoreID    string
	UserID     string
	ProductID  string
	SupplierID *string
	Type       string
	Quantity   int64
	Price      *decimal.Decimal
	Batch      *string
	Expiration *time.Time
	Note       *string
}

// RegisterMovement valida la entrada, rechaza SAIDA/PERDA mayores al stock disponible
// (domain.ErrInsufficientStock) y persiste el movimiento con su balanceAfter.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory.RegisterMovement")
	defer span.End()

	mtype := entity.MovementType(input.Type)
	if !mtype.Valid() || input.Quantity <= 0 || input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	storeID := input.StoreID
	if storeID == "" {
		storeID = product.StoreID
	}
	if product.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	if !product.IsActive() {
		return nil, domain.ErrInvalidInput
	}
	if input.SupplierID != nil && *input.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil || supplier.StoreID != storeID {
			return nil, domain.ErrNotFound
		}
	}
	span.SetAttributes(
		attribute.String("product_id", product.ID),
		attribute.String("store_id", storeID),
		attribute.String("type", input.Type),
	)

	now := uc.now()
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		StoreID:    storeID,
		SupplierID: emptyToNil(input.SupplierID),
		UserID:     emptyToNil(&input.UserID),
		Type:       mtype,
		Quantity:   input.Quantity,
		Price:      input.Price,
		Batch:      input.Batch,
		Expiration: input.Expiration,
		Note:       input.Note,
		CreatedAt:  now,
	}

	var before ledger.Balance
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
		if err := movRepo.LockLedger(ctx, product.ID, storeID); err != nil {
			return err
		}
		entries, err := movRepo.LedgerEntries(ctx, product.ID, storeID)
		if err != nil {
			return err
		}
		before = ledger.Fold(entries)
		if ledger.Delta(mtype, input.Quantity) < 0 && input.Quantity > before.Stock {
			return domain.ErrInsufficientStock
		}
		mov.BalanceAfter = before.Apply(ledger.Entry{Type: mtype, Quantity: input.Quantity}).Stock
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	if before.NegativeStockDetected {
		uc.obs.ObserveNegativeStock()
		uc.log.Warn().Str("product_id", product.ID).Str("store_id", storeID).
			Int64("raw_balance", before.Raw).Msg("libro de movimientos con saldo negativo; stock recortado a 0")
	}
	uc.obs.ObserveMovement(string(mtype))
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", product.ID).
		Str("store_id", storeID).
		Str("type", string(mtype)).
		Int64("quantity", mov.Quantity).
		Int64("balance_after", mov.BalanceAfter).
		Msg("movimiento registrado")
	return toMovementResponse(mov), nil
}

// VerifyMovement marca un movimiento como verificado. Idempotente; un movimiento cancelado
// no se puede verificar (domain.ErrConflict). storeID vacío no restringe la tienda.
func (uc *RegisterMovementUseCase) VerifyMovement(ctx context.Context, movementID, storeID string) (*dto.MovementResponse, error) {
	mov, err := uc.getScoped(ctx, uc.movRepo, movementID, storeID)
	if err != nil {
		return nil, err
	}
	if mov.Cancelled {
		return nil, domain.ErrConflict
	}
	if mov.Verified {
		return toMovementResponse(mov), nil
	}
	if err := uc.movRepo.SetVerified(ctx, mov.ID, true); err != nil {
		return nil, err
	}
	mov.Verified = true
	return toMovementResponse(mov), nil
}

// CancelMovement marca el movimiento como cancelado: deja de contar en el saldo pero sigue
// en el libro. Cancelar dos veces devuelve domain.ErrConflict. Cancelar una entrada cuyas
// unidades ya salieron devuelve domain.ErrInsufficientStock.
func (uc *RegisterMovementUseCase) CancelMovement(ctx context.Context, movementID, storeID, userID string) (*dto.MovementResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory.CancelMovement")
	defer span.End()

	var out *entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
		mov, err := uc.getScoped(ctx, movRepo, movementID, storeID)
		if err != nil {
			return err
		}
		if err := movRepo.LockLedger(ctx, mov.ProductID, mov.StoreID); err != nil {
			return err
		}
		if mov.Cancelled {
			return domain.ErrConflict
		}
		if ledger.Delta(mov.Type, mov.Quantity) > 0 {
			entries, err := movRepo.LedgerEntries(ctx, mov.ProductID, mov.StoreID)
			if err != nil {
				return err
			}
			if ledger.Fold(entries).Raw < mov.Quantity {
				return domain.ErrInsufficientStock
			}
		}
		at := uc.now()
		if err := movRepo.MarkCancelled(ctx, mov.ID, at); err != nil {
			return err
		}
		mov.Cancelled = true
		mov.CancelledAt = &at
		out = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("movement_id", out.ID).Str("store_id", out.StoreID).Str("user_id", userID).Msg("movimiento cancelado")
	return toMovementResponse(out), nil
}

// ListMovements lista movimientos con filtros. Limit se acota a [1, 200].
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMovementLimit
	}
	if filter.Limit > maxMovementLimit {
		filter.Limit = maxMovementLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func (uc *RegisterMovementUseCase) getScoped(ctx context.Context, repo repository.MovementRepository, movementID, storeID string) (*entity.Movement, error) {
	mov, err := repo.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil || (storeID != "" && mov.StoreID != storeID) {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		StoreID:      m.StoreID,
		SupplierID:   m.SupplierID,
		UserID:       m.UserID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		Price:        m.Price,
		Batch:        m.Batch,
		Expiration:   m.Expiration,
		Note:         m.Note,
		BalanceAfter: m.BalanceAfter,
		Verified:     m.Verified,
		Cancelled:    m.Cancelled,
		CancelledAt:  m.CancelledAt,
		CreatedAt:    m.CreatedAt,
	}
}

package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// storeID viene del path y userID del token.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, storeID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInputDTO{
		StoreID:    storeID,
		UserID:     userID,
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		Price:      in.Price,
		Batch:      in.Batch,
		Expiration: in.Expiration,
		Note:       in.Note,
	}
	return uc.RegisterMovement(ctx, input)
}

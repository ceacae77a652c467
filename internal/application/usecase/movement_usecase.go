package usecase

import (
	"context"

	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

// MovementUseCase consulta del libro de movimientos (solo lectura: el libro
// es append-only y lo escriben el motor de conteo y el catálogo).
type MovementUseCase struct {
	stores repository.StoreResolver
}

// NewMovementUseCase construye el caso de uso de movimientos.
func NewMovementUseCase(stores repository.StoreResolver) *MovementUseCase {
	return &MovementUseCase{stores: stores}
}

// List devuelve los últimos movimientos del tenant con producto y usuario.
func (uc *MovementUseCase) List(ctx context.Context, companyID string, limit int) ([]*entity.MovementWithDetails, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return store.Movements().ListByCompany(ctx, companyID, limit)
}

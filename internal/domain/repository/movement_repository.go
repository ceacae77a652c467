package repository

import (
	"context"

	"github.com/jhoicas/sysstock-api/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos. Solo inserta y lista:
// las entradas son inmutables.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListByCompany(ctx context.Context, companyID string, limit int) ([]*entity.MovementWithDetails, error)
}

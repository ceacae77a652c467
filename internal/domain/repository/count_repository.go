package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
)

// CountItemRepository puerto del área de staging del conteo.
type CountItemRepository interface {
	// GetByProductForUpdate obtiene el item en curso de un producto
	// bloqueando la fila (SELECT FOR UPDATE). Devuelve (nil, nil) si no hay.
	// Solo tiene sentido dentro de una transacción.
	GetByProductForUpdate(ctx context.Context, companyID, productID string) (*entity.CountItem, error)
	Create(ctx context.Context, item *entity.CountItem) error
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	// ListByCompany devuelve los items crudos del tenant (para finalize).
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CountItem, error)
	// ListWithProducts devuelve los items con código/descripción/unidad del
	// producto, ordenados por registro descendente (último escaneo primero).
	ListWithProducts(ctx context.Context, companyID string) ([]*entity.CountItemWithProduct, error)
	// DeleteByCompany vacía el staging del tenant (cierre del conteo).
	DeleteByCompany(ctx context.Context, companyID string) error
}

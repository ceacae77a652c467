package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Las implementaciones devuelven (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	// FindByIdentifier busca un producto activo cuyo código de barras sea
	// identifier o altIdentifier, o cuyo código interno sea identifier.
	// A lo sumo un resultado.
	FindByIdentifier(ctx context.Context, companyID, identifier, altIdentifier string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// SetQuantity fija la existencia en un valor absoluto (usado por el
	// finalize del conteo: la cantidad contada es la nueva verdad).
	SetQuantity(ctx context.Context, companyID, productID string, quantity decimal.Decimal) error
	// Deactivate marca el producto como inactivo (soft delete).
	Deactivate(ctx context.Context, companyID, id string) error
	// ListByCompany lista productos activos; search filtra por descripción,
	// código o código de barras.
	ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Product, error)
}

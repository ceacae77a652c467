package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
)

// Store es la capacidad de acceso a datos de un tenant. Las dos variantes de
// tenancy (almacén compartido con columna empresa_id y base de datos por
// tenant) la implementan igual, así los casos de uso se escriben una sola vez.
type Store interface {
	Products() ProductRepository
	Movements() MovementRepository
	CountItems() CountItemRepository
	Users() UserRepository
	Companies() CompanyRepository
	Dashboard() DashboardRepository

	// InTx ejecuta fn dentro de una transacción; los repositorios de TxStore
	// quedan atados a esa transacción. Commit si fn devuelve nil, Rollback si
	// devuelve error. Es el único límite transaccional multi-sentencia del
	// sistema (finalize) más el read-modify-write del accumulate.
	InTx(ctx context.Context, fn func(tx TxStore) error) error
}

// TxStore repositorios atados a una transacción en curso.
type TxStore interface {
	Products() ProductRepository
	Movements() MovementRepository
	CountItems() CountItemRepository
	Users() UserRepository
	Companies() CompanyRepository
}

// StoreResolver resuelve el Store de un tenant. La variante compartida
// devuelve siempre el mismo handle; la variante directorio abre (y cachea)
// un pool por tenant a partir del descriptor de conexión de la empresa.
type StoreResolver interface {
	StoreFor(ctx context.Context, companyID string) (Store, error)
}

// DashboardRepository consultas agregadas del dashboard del tenant.
type DashboardRepository interface {
	Stats(ctx context.Context, companyID string) (*CompanyStats, error)
	LowestStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
}

// CompanyStats resumen del inventario de un tenant (vista resumo_estoque).
type CompanyStats struct {
	TotalProducts int
	TotalStock    decimal.Decimal
	TotalValue    decimal.Decimal
	ActiveUsers   int
}

package usecase

import (
	"context"

	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

// DashboardUseCase resumen del inventario del tenant.
type DashboardUseCase struct {
	stores repository.StoreResolver
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(stores repository.StoreResolver) *DashboardUseCase {
	return &DashboardUseCase{stores: stores}
}

// Summary agregados del tenant más los productos con menor existencia.
type Summary struct {
	Stats       *repository.CompanyStats
	LowestStock []*entity.Product
}

// Get arma el resumen: totales de la vista agregada y los cinco productos
// con menor existencia.
func (uc *DashboardUseCase) Get(ctx context.Context, companyID string) (*Summary, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats, err := store.Dashboard().Stats(ctx, companyID)
	if err != nil {
		return nil, err
	}
	lowest, err := store.Dashboard().LowestStock(ctx, companyID, 5)
	if err != nil {
		return nil, err
	}
	return &Summary{Stats: stats, LowestStock: lowest}, nil
}

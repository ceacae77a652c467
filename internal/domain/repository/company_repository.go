package repository

import (
	"context"

	"github.com/jhoicas/sysstock-api/internal/domain/entity"
)

// CompanyRepository puerto del directorio de tenants. Vive siempre en el
// almacén maestro, también en la variante base-por-tenant.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByTag(ctx context.Context, tag string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// SetActive activa o desactiva el tenant; desactivar bloquea logins sin
	// borrar datos.
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}

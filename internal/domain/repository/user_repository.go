package repository

import (
	"context"

	"github.com/jhoicas/sysstock-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, companyID, username string) (*entity.User, error)
	// GetMasterByUsername busca un usuario master (sin empresa).
	GetMasterByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
}

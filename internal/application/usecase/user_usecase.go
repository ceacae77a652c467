package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// UserUseCase administración de los usuarios de un tenant (solo admin).
type UserUseCase struct {
	stores repository.StoreResolver
	log    *logger.Logger
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(stores repository.StoreResolver, log *logger.Logger) *UserUseCase {
	return &UserUseCase{stores: stores, log: log}
}

// CreateUserInput datos para crear un usuario del tenant.
type CreateUserInput struct {
	Username string
	Name     string
	Password string
	IsAdmin  bool
}

// Create registra un usuario. El username es único dentro del tenant.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in CreateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		IsAdmin:      in.IsAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("usuario", username).Msg("usuario creado")
	return user, nil
}

// UpdateUserInput campos editables; nil conserva el valor actual. Password
// nil o vacío conserva la contraseña.
type UpdateUserInput struct {
	Username *string
	Name     *string
	Password *string
	IsAdmin  *bool
	Active   *bool
}

// Update edita un usuario del tenant.
func (uc *UserUseCase) Update(ctx context.Context, companyID, id string, in UpdateUserInput) (*entity.User, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	user, err := store.Users().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Username = username
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 6 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()

	if err := store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List lista los usuarios del tenant.
func (uc *UserUseCase) List(ctx context.Context, companyID string) ([]*entity.User, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return store.Users().ListByCompany(ctx, companyID)
}

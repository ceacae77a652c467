package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sysstock-api/internal/application/auth"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/config"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

var tagPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,31}$`)

// CompanyUseCase administración del directorio de tenants (solo master).
type CompanyUseCase struct {
	master  repository.Store
	stores  repository.StoreResolver
	tenancy config.TenancyConfig
	log     *logger.Logger
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(master repository.Store, stores repository.StoreResolver, tenancy config.TenancyConfig, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{master: master, stores: stores, tenancy: tenancy, log: log}
}

// CreateCompanyInput datos para dar de alta un tenant con su admin inicial.
// Conn es obligatorio en tenancy aislada y se ignora en la compartida.
type CreateCompanyInput struct {
	Tag           string
	Name          string
	AdminUsername string
	AdminName     string
	AdminPassword string
	Conn          *entity.StoreConnection
}

// Create da de alta la empresa junto con su usuario admin inicial. En
// tenancy compartida ambos inserts van en una transacción del almacén
// maestro. En tenancy aislada la fila de empresa lleva el descriptor de
// conexión y el admin se crea en el almacén del tenant, que debe existir y
// aceptar conexiones (el aprovisionamiento de la base es externo).
func (uc *CompanyUseCase) Create(ctx context.Context, in CreateCompanyInput) (*entity.Company, error) {
	tag := strings.ToLower(strings.TrimSpace(in.Tag))
	name := strings.TrimSpace(in.Name)
	adminUser := strings.TrimSpace(in.AdminUsername)
	if !tagPattern.MatchString(tag) || tag == auth.MasterTag {
		return nil, domain.ErrInvalidInput
	}
	if name == "" || adminUser == "" || len(in.AdminPassword) < 6 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.master.Companies().GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.NewString(),
		Tag:       tag,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Username:     adminUser,
		Name:         strings.TrimSpace(in.AdminName),
		PasswordHash: string(hash),
		IsAdmin:      true,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if uc.tenancy.Mode == config.TenancyIsolated {
		if in.Conn == nil || in.Conn.Host == "" || in.Conn.DBName == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Conn = in.Conn
		if err := uc.master.Companies().Create(ctx, company); err != nil {
			return nil, err
		}
		store, err := uc.stores.StoreFor(ctx, company.ID)
		if err == nil {
			err = store.Users().Create(ctx, admin)
		}
		if err != nil {
			// El almacén del tenant no respondió: dejar la empresa bloqueada
			// hasta que el operador la revise.
			uc.log.Error().Err(err).Str("tag", tag).Msg("alta de admin en almacén del tenant falló")
			if derr := uc.master.Companies().SetActive(ctx, company.ID, false); derr != nil {
				uc.log.Error().Err(derr).Str("tag", tag).Msg("no se pudo desactivar la empresa")
			}
			return nil, err
		}
		uc.log.Info().Str("tag", tag).Msg("empresa creada (almacén aislado)")
		return company, nil
	}

	err = uc.master.InTx(ctx, func(tx repository.TxStore) error {
		if err := tx.Companies().Create(ctx, company); err != nil {
			return err
		}
		return tx.Users().Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tag", tag).Msg("empresa creada")
	return company, nil
}

// Get devuelve una empresa por id.
func (uc *CompanyUseCase) Get(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.master.Companies().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// Update edita tag y nombre de la empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, id, tag, name string) (*entity.Company, error) {
	company, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	name = strings.TrimSpace(name)
	if !tagPattern.MatchString(tag) || tag == auth.MasterTag || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if tag != company.Tag {
		dup, err := uc.master.Companies().GetByTag(ctx, tag)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
	}
	company.Tag = tag
	company.Name = name
	company.UpdatedAt = time.Now()
	if err := uc.master.Companies().Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// SetActive activa o desactiva el tenant. Desactivar bloquea logins de sus
// usuarios; los datos quedan intactos.
func (uc *CompanyUseCase) SetActive(ctx context.Context, id string, active bool) error {
	if err := uc.master.Companies().SetActive(ctx, id, active); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", id).Bool("ativo", active).Msg("empresa actualizada")
	return nil
}

// List lista las empresas del directorio.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.master.Companies().List(ctx, limit, offset)
}

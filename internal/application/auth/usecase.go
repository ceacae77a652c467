package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/config"
	"github.com/jhoicas/sysstock-api/pkg/jwt"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// MasterTag tag reservado: entra al directorio de tenants, no a un tenant.
const MasterTag = "master"

// UseCase autenticación de usuarios de tenant y del master. El master vive
// en el almacén maestro; los usuarios de tenant se buscan vía el resolver,
// así el flujo es el mismo en las dos variantes de tenancy.
type UseCase struct {
	master repository.Store
	stores repository.StoreResolver
	jwtCfg config.JWTConfig
	log    *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(master repository.Store, stores repository.StoreResolver, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{master: master, stores: stores, jwtCfg: jwtCfg, log: log}
}

// Session identidad autenticada más su token firmado.
type Session struct {
	Token   string
	User    *entity.User
	Company *entity.Company // nil para sesiones master
}

// Login valida tag + usuario + contraseña y emite el token de sesión.
// El tag "master" autentica contra los usuarios master; cualquier otro tag
// resuelve la empresa y bloquea el acceso si está inactiva.
func (uc *UseCase) Login(ctx context.Context, tag, username, password string) (*Session, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	username = strings.TrimSpace(username)
	if tag == "" || username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	if tag == MasterTag {
		return uc.loginMaster(ctx, username, password)
	}

	company, err := uc.master.Companies().GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if company == nil {
		// No revelar si la empresa existe
		return nil, domain.ErrUnauthorized
	}
	if !company.Active {
		return nil, domain.ErrCompanyInactive
	}

	store, err := uc.stores.StoreFor(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	user, err := store.Users().GetByUsername(ctx, company.ID, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		uc.log.Warn().Str("empresa", tag).Str("usuario", username).Msg("contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, company.ID, user.IsAdmin, false, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("empresa", tag).Str("usuario", username).Msg("login de tenant")
	return &Session{Token: token, User: user, Company: company}, nil
}

func (uc *UseCase) loginMaster(ctx context.Context, username, password string) (*Session, error) {
	user, err := uc.master.Users().GetMasterByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		uc.log.Warn().Str("usuario", username).Msg("contraseña master incorrecta")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, "", user.IsAdmin, true, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("usuario", username).Msg("login master")
	return &Session{Token: token, User: user}, nil
}

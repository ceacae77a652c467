package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/config"
	"github.com/jhoicas/sysstock-api/pkg/jwt"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	companies map[string]*entity.Company // por tag
	users     []*entity.User
}

func (s *fakeStore) Products() repository.ProductRepository     { return nil }
func (s *fakeStore) Movements() repository.MovementRepository   { return nil }
func (s *fakeStore) CountItems() repository.CountItemRepository { return nil }
func (s *fakeStore) Dashboard() repository.DashboardRepository  { return nil }
func (s *fakeStore) Users() repository.UserRepository           { return &fakeUsers{s} }
func (s *fakeStore) Companies() repository.CompanyRepository    { return &fakeCompanies{s} }
func (s *fakeStore) InTx(_ context.Context, fn func(tx repository.TxStore) error) error {
	return fn(nil)
}

func (s *fakeStore) StoreFor(_ context.Context, _ string) (repository.Store, error) {
	return s, nil
}

type fakeCompanies struct{ s *fakeStore }

func (r *fakeCompanies) Create(_ context.Context, _ *entity.Company) error { return nil }
func (r *fakeCompanies) Update(_ context.Context, _ *entity.Company) error { return nil }
func (r *fakeCompanies) SetActive(_ context.Context, _ string, _ bool) error {
	return nil
}
func (r *fakeCompanies) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}
func (r *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for _, co := range r.s.companies {
		if co.ID == id {
			return co, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanies) GetByTag(_ context.Context, tag string) (*entity.Company, error) {
	return r.s.companies[tag], nil
}

type fakeUsers struct{ s *fakeStore }

func (r *fakeUsers) Create(_ context.Context, _ *entity.User) error { return nil }
func (r *fakeUsers) Update(_ context.Context, _ *entity.User) error { return nil }
func (r *fakeUsers) GetByID(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUsers) GetByUsername(_ context.Context, companyID, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUsers) GetMasterByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.IsMaster && u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUsers) ListByCompany(_ context.Context, _ string) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUsers) CountActiveByCompany(_ context.Context, _ string) (int, error) {
	return 0, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "auth-test-secret"

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func buildUseCase(t *testing.T) (*UseCase, *fakeStore) {
	t.Helper()
	store := &fakeStore{
		companies: map[string]*entity.Company{
			"acme":    {ID: "co-1", Tag: "acme", Name: "ACME Ltda", Active: true},
			"cerrada": {ID: "co-2", Tag: "cerrada", Name: "Cerrada SA", Active: false},
		},
		users: []*entity.User{
			{ID: "u-1", CompanyID: "co-1", Username: "maria", PasswordHash: hashOf(t, "secreta1"), IsAdmin: true, Active: true},
			{ID: "u-2", CompanyID: "co-1", Username: "jose", PasswordHash: hashOf(t, "secreta2"), Active: false},
			{ID: "u-3", Username: "root", PasswordHash: hashOf(t, "masterpass"), IsMaster: true, Active: true},
		},
	}
	jwtCfg := config.JWTConfig{Secret: testSecret, Expiration: 60, Issuer: "sysstock-test"}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return NewUseCase(store, store, jwtCfg, log), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TenantOK(t *testing.T) {
	uc, _ := buildUseCase(t)

	session, err := uc.Login(context.Background(), "acme", "maria", "secreta1")
	require.NoError(t, err)
	require.NotNil(t, session.Company)
	assert.Equal(t, "acme", session.Company.Tag)
	assert.Equal(t, "maria", session.User.Username)

	claims, err := jwt.Parse(testSecret, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "co-1", claims.CompanyID)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsMaster)
}

func TestLogin_TagInsensibleAMayusculas(t *testing.T) {
	uc, _ := buildUseCase(t)

	session, err := uc.Login(context.Background(), "  ACME ", "maria", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, "acme", session.Company.Tag)
}

func TestLogin_MasterOK(t *testing.T) {
	uc, _ := buildUseCase(t)

	session, err := uc.Login(context.Background(), "master", "root", "masterpass")
	require.NoError(t, err)
	assert.Nil(t, session.Company, "la sesión master no pertenece a ninguna empresa")

	claims, err := jwt.Parse(testSecret, session.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsMaster)
	assert.Empty(t, claims.CompanyID)
}

func TestLogin_EmpresaInactiva(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), "cerrada", "maria", "secreta1")
	assert.ErrorIs(t, err, domain.ErrCompanyInactive)
}

func TestLogin_EmpresaInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), "fantasma", "maria", "secreta1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"empresa desconocida no debe distinguirse de credenciales malas")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), "acme", "maria", "equivocada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), "acme", "jose", "secreta2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc, _ := buildUseCase(t)

	for _, tc := range []struct{ tag, user, pass string }{
		{"", "maria", "secreta1"},
		{"acme", "", "secreta1"},
		{"acme", "maria", ""},
	} {
		_, err := uc.Login(context.Background(), tc.tag, tc.user, tc.pass)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

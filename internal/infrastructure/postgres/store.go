package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/config"
)

var (
	_ repository.Store   = (*Store)(nil)
	_ repository.TxStore = (*txStore)(nil)
)

// Store implementa repository.Store sobre un pool pgx. En tenancy compartida
// hay un único Store; en la variante base-por-tenant hay uno por tenant.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el Store con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool expone el pool subyacente (cierre en main).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) Products() repository.ProductRepository    { return NewProductRepository(s.pool) }
func (s *Store) Movements() repository.MovementRepository  { return NewMovementRepository(s.pool) }
func (s *Store) CountItems() repository.CountItemRepository { return NewCountItemRepository(s.pool) }
func (s *Store) Users() repository.UserRepository          { return NewUserRepository(s.pool) }
func (s *Store) Companies() repository.CompanyRepository   { return NewCompanyRepository(s.pool) }
func (s *Store) Dashboard() repository.DashboardRepository { return NewDashboardRepository(s.pool) }

// InTx inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (s *Store) InTx(ctx context.Context, fn func(tx repository.TxStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&txStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore entrega los mismos repositorios pero atados a la transacción.
type txStore struct {
	q Querier
}

func (t *txStore) Products() repository.ProductRepository    { return NewProductRepository(t.q) }
func (t *txStore) Movements() repository.MovementRepository  { return NewMovementRepository(t.q) }
func (t *txStore) CountItems() repository.CountItemRepository { return NewCountItemRepository(t.q) }
func (t *txStore) Users() repository.UserRepository          { return NewUserRepository(t.q) }
func (t *txStore) Companies() repository.CompanyRepository   { return NewCompanyRepository(t.q) }

// ── Resolvers de tenancy ─────────────────────────────────────────────────────

var (
	_ repository.StoreResolver = (*SharedResolver)(nil)
	_ repository.StoreResolver = (*DirectoryResolver)(nil)
)

// SharedResolver variante de almacén compartido: todos los tenants viven en
// el mismo pool, las filas se separan por empresa_id.
type SharedResolver struct {
	store *Store
}

// NewSharedResolver construye el resolver compartido.
func NewSharedResolver(store *Store) *SharedResolver {
	return &SharedResolver{store: store}
}

// StoreFor devuelve siempre el mismo handle.
func (r *SharedResolver) StoreFor(_ context.Context, _ string) (repository.Store, error) {
	return r.store, nil
}

// DirectoryResolver variante base-por-tenant: resuelve el descriptor de
// conexión guardado en la fila de la empresa (almacén maestro) y abre un
// pool por tenant, cacheado para el resto del proceso.
type DirectoryResolver struct {
	companies repository.CompanyRepository

	mu     sync.Mutex
	stores map[string]*Store
}

// NewDirectoryResolver construye el resolver de directorio sobre el
// repositorio de empresas del almacén maestro.
func NewDirectoryResolver(companies repository.CompanyRepository) *DirectoryResolver {
	return &DirectoryResolver{
		companies: companies,
		stores:    make(map[string]*Store),
	}
}

// StoreFor devuelve el Store aislado del tenant, abriéndolo si es la
// primera vez que se usa en este proceso.
func (r *DirectoryResolver) StoreFor(ctx context.Context, companyID string) (repository.Store, error) {
	r.mu.Lock()
	if store, ok := r.stores[companyID]; ok {
		r.mu.Unlock()
		return store, nil
	}
	r.mu.Unlock()

	company, err := r.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.Conn == nil {
		return nil, fmt.Errorf("empresa %s sin descriptor de conexión", company.Tag)
	}

	pool, err := NewPool(ctx, config.DBConfig{
		Host:     company.Conn.Host,
		Port:     company.Conn.Port,
		User:     company.Conn.User,
		Password: company.Conn.Password,
		DBName:   company.Conn.DBName,
		SSLMode:  company.Conn.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir almacén de %s: %w", company.Tag, err)
	}

	store := NewStore(pool)
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.stores[companyID]; ok {
		// Otro request ganó la carrera: conservar el primero
		pool.Close()
		return existing, nil
	}
	r.stores[companyID] = store
	return store, nil
}

// Close cierra todos los pools por tenant abiertos.
func (r *DirectoryResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, store := range r.stores {
		store.pool.Close()
	}
	r.stores = make(map[string]*Store)
}

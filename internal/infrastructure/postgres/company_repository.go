package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, tag, descricao, ativo, db_host, db_port, db_user, db_password, db_name, db_sslmode, created_at, updated_at`

// CompanyRepo directorio de tenants sobre PostgreSQL (almacén maestro).
// Las columnas db_* son el descriptor de conexión de la variante
// base-por-tenant; quedan en NULL en tenancy compartida.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. El tag se normaliza a minúsculas.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	company.Tag = strings.ToLower(strings.TrimSpace(company.Tag))
	query := `
		INSERT INTO empresas (id, tag, descricao, ativo, db_host, db_port, db_user, db_password, db_name, db_sslmode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	host, port, user, password, dbname, sslmode := connColumns(company.Conn)
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Tag, company.Name, company.Active,
		host, port, user, password, dbname, sslmode,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM empresas WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get company")
}

// GetByTag obtiene una empresa por su tag de login (case-insensitive).
func (r *CompanyRepo) GetByTag(ctx context.Context, tag string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM empresas WHERE tag = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(tag))), "get company by tag")
}

// Update actualiza tag y nombre de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	company.Tag = strings.ToLower(strings.TrimSpace(company.Tag))
	query := `
		UPDATE empresas SET tag = $2, descricao = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, company.ID, company.Tag, company.Name, company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// SetActive activa o desactiva el tenant. Desactivar bloquea los logins de
// sus usuarios sin tocar sus datos.
func (r *CompanyRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE empresas SET ativo = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set company active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas, las más recientes primero.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM empresas ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		company, err := r.scanRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, company)
	}
	return list, rows.Err()
}

func (r *CompanyRepo) scanOne(row interface{ Scan(dest ...any) error }, op string) (*entity.Company, error) {
	company, err := r.scanRow(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return company, nil
}

func (r *CompanyRepo) scanRow(scan func(dest ...any) error) (*entity.Company, error) {
	var c entity.Company
	var host, user, password, dbname, sslmode *string
	var port *int
	if err := scan(&c.ID, &c.Tag, &c.Name, &c.Active,
		&host, &port, &user, &password, &dbname, &sslmode,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if host != nil && *host != "" {
		c.Conn = &entity.StoreConnection{
			Host:   *host,
			DBName: deref(dbname),
			User:   deref(user),
		}
		if port != nil {
			c.Conn.Port = *port
		}
		c.Conn.Password = deref(password)
		c.Conn.SSLMode = deref(sslmode)
		if c.Conn.SSLMode == "" {
			c.Conn.SSLMode = "disable"
		}
	}
	return &c, nil
}

func connColumns(conn *entity.StoreConnection) (host *string, port *int, user, password, dbname, sslmode *string) {
	if conn == nil {
		return nil, nil, nil, nil, nil, nil
	}
	return &conn.Host, &conn.Port, &conn.User, &conn.Password, &conn.DBName, &conn.SSLMode
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

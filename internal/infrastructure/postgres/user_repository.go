package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, empresa_id, usuario, nome, senha_hash, is_admin, is_master, ativo, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL
// (usable con pool o tx). empresa_id es NULL para usuarios master.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO usuarios (id, empresa_id, usuario, nome, senha_hash, is_admin, is_master, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, nullableCompany(user.CompanyID), user.Username, user.Name, user.PasswordHash,
		user.IsAdmin, user.IsMaster, user.Active, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID dentro del tenant.
func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1 AND empresa_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, companyID), "get user")
}

// GetByUsername obtiene un usuario por username dentro del tenant.
func (r *UserRepo) GetByUsername(ctx context.Context, companyID, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE usuario = $1 AND empresa_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, username, companyID), "get user by username")
}

// GetMasterByUsername busca un usuario master (sin empresa).
func (r *UserRepo) GetMasterByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE usuario = $1 AND is_master = true`
	return r.scanOne(r.q.QueryRow(ctx, query, username), "get master user")
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE usuarios SET usuario = $2, nome = $3, senha_hash = $4, is_admin = $5, ativo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Username, user.Name, user.PasswordHash, user.IsAdmin, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByCompany lista los usuarios del tenant ordenados por nombre.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE empresa_id = $1 ORDER BY nome ASC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	return list, rows.Err()
}

// CountActiveByCompany cuenta los usuarios activos del tenant (dashboard).
func (r *UserRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(id) FROM usuarios WHERE empresa_id = $1 AND ativo = true`,
		companyID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *UserRepo) scanOne(row interface{ Scan(dest ...any) error }, op string) (*entity.User, error) {
	user, err := scanUser(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func scanUser(scan func(dest ...any) error) (*entity.User, error) {
	var u entity.User
	var companyID *string
	if err := scan(&u.ID, &companyID, &u.Username, &u.Name, &u.PasswordHash,
		&u.IsAdmin, &u.IsMaster, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if companyID != nil {
		u.CompanyID = *companyID
	}
	return &u, nil
}

func nullableCompany(companyID string) *string {
	if companyID == "" {
		return nil
	}
	return &companyID
}

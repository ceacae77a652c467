package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, empresa_id, codigo, codigo_barras, descricao, unidade, quantidade, preco_custo, preco_venda, ativo, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para
// productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO produtos (id, empresa_id, codigo, codigo_barras, descricao, unidade, quantidade, preco_custo, preco_venda, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.Code, product.Barcode, product.Description,
		product.Unit, product.Quantity, product.CostPrice, product.SalePrice, product.Active,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro del tenant.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE id = $1 AND empresa_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, companyID), "get product")
}

// GetByCode obtiene un producto por código interno.
func (r *ProductRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE empresa_id = $1 AND codigo = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, code), "get product by code")
}

// FindByIdentifier resuelve un identificador escaneado contra el catálogo
// activo: código de barras o código interno igual al identificador o a su
// candidato sin dígito verificador. Un resultado como máximo.
func (r *ProductRepo) FindByIdentifier(ctx context.Context, companyID, identifier, altIdentifier string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM produtos
		WHERE empresa_id = $1 AND ativo = true
		  AND (codigo_barras = $2 OR codigo_barras = $3 OR codigo = $2 OR codigo = $3)
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, identifier, altIdentifier), "find product by identifier")
}

// Update actualiza los datos del catálogo, incluida la existencia (edición
// directa del producto).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE produtos
		SET codigo = $3, codigo_barras = $4, descricao = $5, unidade = $6, quantidade = $7,
		    preco_custo = $8, preco_venda = $9, updated_at = $10
		WHERE id = $1 AND empresa_id = $2`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.Code, product.Barcode, product.Description,
		product.Unit, product.Quantity, product.CostPrice, product.SalePrice, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetQuantity fija la existencia en un valor absoluto (finalize del conteo).
func (r *ProductRepo) SetQuantity(ctx context.Context, companyID, productID string, quantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE produtos SET quantidade = $3, updated_at = now() WHERE id = $1 AND empresa_id = $2`,
		productID, companyID, quantity,
	)
	if err != nil {
		return fmt.Errorf("set product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca el producto como inactivo. Nunca se borra la fila: el
// historial de movimientos debe seguir siendo válido.
func (r *ProductRepo) Deactivate(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE produtos SET ativo = false, updated_at = now() WHERE id = $1 AND empresa_id = $2`,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista productos activos; search filtra por descripción,
// código o código de barras.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE empresa_id = $1 AND ativo = true`
	args := []any{companyID}
	if search != "" {
		query += ` AND (descricao ILIKE $2 OR codigo ILIKE $2 OR codigo_barras ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY descricao ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Barcode, &p.Description, &p.Unit,
			&p.Quantity, &p.CostPrice, &p.SalePrice, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row interface{ Scan(dest ...any) error }, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Barcode, &p.Description, &p.Unit,
		&p.Quantity, &p.CostPrice, &p.SalePrice, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

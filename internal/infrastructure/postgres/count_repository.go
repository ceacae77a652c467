package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

var _ repository.CountItemRepository = (*CountItemRepo)(nil)

// CountItemRepo staging del conteo sobre PostgreSQL (usable con pool o tx).
// La tabla tiene unicidad (empresa_id, produto_id): a lo sumo un item en
// curso por producto.
type CountItemRepo struct {
	q Querier
}

// NewCountItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountItemRepository(q Querier) *CountItemRepo {
	return &CountItemRepo{q: q}
}

// GetByProductForUpdate obtiene el item del producto bloqueando la fila
// (SELECT FOR UPDATE) para serializar escaneos concurrentes del mismo
// producto. Devuelve (nil, nil) si no hay item en curso.
func (r *CountItemRepo) GetByProductForUpdate(ctx context.Context, companyID, productID string) (*entity.CountItem, error) {
	query := `
		SELECT id, empresa_id, produto_id, quantidade, data_registro
		FROM contagem_itens
		WHERE empresa_id = $1 AND produto_id = $2
		FOR UPDATE`
	var item entity.CountItem
	err := r.q.QueryRow(ctx, query, companyID, productID).Scan(
		&item.ID, &item.CompanyID, &item.ProductID, &item.Quantity, &item.RegisteredAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count item for update: %w", err)
	}
	return &item, nil
}

// Create persiste un item nuevo del conteo.
func (r *CountItemRepo) Create(ctx context.Context, item *entity.CountItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO contagem_itens (id, empresa_id, produto_id, quantidade, data_registro)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.CompanyID, item.ProductID, item.Quantity, item.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("create count item: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad acumulada y refresca data_registro para
// que el item suba al tope del listado.
func (r *CountItemRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE contagem_itens SET quantidade = $2, data_registro = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update count item: %w", err)
	}
	return nil
}

// Delete elimina un item del conteo.
func (r *CountItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM contagem_itens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete count item: %w", err)
	}
	return nil
}

// ListByCompany devuelve los items crudos del tenant.
func (r *CountItemRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CountItem, error) {
	query := `
		SELECT id, empresa_id, produto_id, quantidade, data_registro
		FROM contagem_itens WHERE empresa_id = $1`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list count items: %w", err)
	}
	defer rows.Close()

	var list []*entity.CountItem
	for rows.Next() {
		var item entity.CountItem
		if err := rows.Scan(&item.ID, &item.CompanyID, &item.ProductID, &item.Quantity, &item.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan count item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// ListWithProducts devuelve los items con datos del producto, del escaneo
// más reciente al más antiguo.
func (r *CountItemRepo) ListWithProducts(ctx context.Context, companyID string) ([]*entity.CountItemWithProduct, error) {
	query := `
		SELECT ci.id, ci.empresa_id, ci.produto_id, ci.quantidade, ci.data_registro,
		       p.codigo, p.descricao, p.unidade
		FROM contagem_itens ci
		JOIN produtos p ON ci.produto_id = p.id
		WHERE ci.empresa_id = $1
		ORDER BY ci.data_registro DESC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list count items with products: %w", err)
	}
	defer rows.Close()

	var list []*entity.CountItemWithProduct
	for rows.Next() {
		var item entity.CountItemWithProduct
		if err := rows.Scan(&item.ID, &item.CompanyID, &item.ProductID, &item.Quantity, &item.RegisteredAt,
			&item.ProductCode, &item.ProductDescription, &item.ProductUnit); err != nil {
			return nil, fmt.Errorf("scan count item with product: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// DeleteByCompany vacía el staging del tenant (cierre del conteo).
func (r *CountItemRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM contagem_itens WHERE empresa_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("clear count items: %w", err)
	}
	return nil
}

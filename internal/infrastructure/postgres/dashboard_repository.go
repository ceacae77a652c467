package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del tenant. El resumen sale de la vista
// resumo_estoque del esquema; el conteo de usuarios de la tabla usuarios.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Stats devuelve el resumen de inventario del tenant. Un tenant sin
// productos devuelve ceros, no error.
func (r *DashboardRepo) Stats(ctx context.Context, companyID string) (*repository.CompanyStats, error) {
	stats := &repository.CompanyStats{
		TotalStock: decimal.Zero,
		TotalValue: decimal.Zero,
	}
	query := `
		SELECT total_produtos, estoque_total, valor_total
		FROM resumo_estoque WHERE empresa_id = $1`
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&stats.TotalProducts, &stats.TotalStock, &stats.TotalValue,
	)
	if err != nil && !isNoRows(err) {
		return nil, fmt.Errorf("company stats: %w", err)
	}

	err = r.q.QueryRow(ctx,
		`SELECT COUNT(id) FROM usuarios WHERE empresa_id = $1 AND ativo = true`,
		companyID,
	).Scan(&stats.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}
	return stats, nil
}

// LowestStock devuelve los productos activos con menor existencia.
func (r *DashboardRepo) LowestStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM produtos WHERE empresa_id = $1 AND ativo = true
		ORDER BY quantidade ASC LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("lowest stock: %w", err)
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

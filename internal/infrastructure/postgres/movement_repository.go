package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lista: las filas son inmutables.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. El timestamp lo asigna el servidor de base
// de datos al escribir (now()).
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimentacoes (id, empresa_id, produto_id, tipo, quantidade, usuario_id, data_hora)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.CompanyID, movement.ProductID, movement.Type,
		movement.Quantity, movement.UserID,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByCompany lista los últimos movimientos del tenant con código y
// descripción del producto y el username del actor (si sigue existiendo).
func (r *MovementRepo) ListByCompany(ctx context.Context, companyID string, limit int) ([]*entity.MovementWithDetails, error) {
	query := `
		SELECT m.id, m.empresa_id, m.produto_id, m.tipo, m.quantidade, m.usuario_id, m.data_hora,
		       p.codigo, p.descricao, COALESCE(u.usuario, '')
		FROM movimentacoes m
		JOIN produtos p ON m.produto_id = p.id
		LEFT JOIN usuarios u ON m.usuario_id = u.id
		WHERE m.empresa_id = $1
		ORDER BY m.data_hora DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementWithDetails
	for rows.Next() {
		var m entity.MovementWithDetails
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &m.UserID,
			&m.CreatedAt, &m.ProductCode, &m.ProductDescription, &m.Username); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

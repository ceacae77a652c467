package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDTO entrada del libro de movimientos en listados.
type MovementDTO struct {
	ID         string          `json:"id"`
	ProdutoID  string          `json:"produto_id"`
	Codigo     string          `json:"codigo"`
	Descricao  string          `json:"descricao"`
	Tipo       string          `json:"tipo"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Usuario    string          `json:"usuario,omitempty"`
	DataHora   time.Time       `json:"data_hora"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Success bool          `json:"success"`
	Itens   []MovementDTO `json:"itens"`
}

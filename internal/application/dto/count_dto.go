package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AccumulateRequest body de POST /api/contagem/add. Quantidade acepta
// número JSON o string con formato de locale; ausente vale 1.
type AccumulateRequest struct {
	Identifier string          `json:"identifier"`
	Quantidade json.RawMessage `json:"quantidade"`
}

// ProdutoRef identidad del producto resuelto en la respuesta del escaneo.
type ProdutoRef struct {
	ID        string `json:"id"`
	Codigo    string `json:"codigo"`
	Descricao string `json:"descricao"`
}

// AccumulateResponse respuesta de POST /api/contagem/add.
type AccumulateResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Produto *ProdutoRef `json:"produto,omitempty"`
	Removed bool        `json:"removed,omitempty"`
}

// CountItemDTO item del listado del conteo en curso.
type CountItemDTO struct {
	ID         string          `json:"id"`
	ProdutoID  string          `json:"produto_id"`
	Codigo     string          `json:"codigo"`
	Descricao  string          `json:"descricao"`
	Unidade    string          `json:"unidade"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// CountListResponse respuesta de GET /api/contagem/list.
type CountListResponse struct {
	Success bool           `json:"success"`
	Itens   []CountItemDTO `json:"itens"`
}

// FinalizeResponse respuesta de POST /api/contagem/finalizar.
type FinalizeResponse struct {
	Success    bool   `json:"success"`
	TotalItens int    `json:"total_itens"`
	Message    string `json:"message,omitempty"`
}

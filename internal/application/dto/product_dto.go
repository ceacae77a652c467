package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para crear un producto.
type CreateProductRequest struct {
	Codigo       string      `json:"codigo"`
	CodigoBarras string      `json:"codigo_barras"`
	Descricao    string      `json:"descricao"`
	Unidade      string      `json:"unidade"`
	Quantidade   FlexDecimal `json:"quantidade"`
	PrecoCusto   FlexDecimal `json:"preco_custo"`
	PrecoVenda   FlexDecimal `json:"preco_venda"`
}

// UpdateProductRequest body para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Codigo       *string      `json:"codigo"`
	CodigoBarras *string      `json:"codigo_barras"`
	Descricao    *string      `json:"descricao"`
	Unidade      *string      `json:"unidade"`
	Quantidade   *FlexDecimal `json:"quantidade"`
	PrecoCusto   *FlexDecimal `json:"preco_custo"`
	PrecoVenda   *FlexDecimal `json:"preco_venda"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	CodigoBarras string          `json:"codigo_barras,omitempty"`
	Descricao    string          `json:"descricao"`
	Unidade      string          `json:"unidade"`
	Quantidade   decimal.Decimal `json:"quantidade"`
	PrecoCusto   decimal.Decimal `json:"preco_custo"`
	PrecoVenda   decimal.Decimal `json:"preco_venda"`
	Ativo        bool            `json:"ativo"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Success bool              `json:"success"`
	Itens   []ProductResponse `json:"itens"`
}

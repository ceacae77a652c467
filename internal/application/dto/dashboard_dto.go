package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen del inventario del tenant.
type DashboardResponse struct {
	Success       bool              `json:"success"`
	TotalProdutos int               `json:"total_produtos"`
	EstoqueTotal  decimal.Decimal   `json:"estoque_total"`
	ValorTotal    decimal.Decimal   `json:"valor_total"`
	TotalUsuarios int               `json:"total_usuarios"`
	MenorEstoque  []ProductResponse `json:"menor_estoque"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un tenant.
// Quantity es la existencia actual; solo la muta el motor de conteo
// (finalize) o una edición directa del catálogo. Active es el soft delete:
// nunca se borra la fila para no invalidar el historial de movimientos.
type Product struct {
	ID          string
	CompanyID   string
	Code        string // código interno, único por empresa
	Barcode     string // EAN/código de barras, opcional y no necesariamente único
	Description string
	Unit        string // unidad de medida (UN, KG, L, ...)
	Quantity    decimal.Decimal
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

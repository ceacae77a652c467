package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeInbound    = "inbound"
	MovementTypeOutbound   = "outbound"
	MovementTypeAdjustment = "adjustment"
	MovementTypeCount      = "count" // reconciliación de conteo físico
)

// Movement es una entrada inmutable del libro de movimientos: una vez
// escrita nunca se actualiza ni se borra.
type Movement struct {
	ID        string
	CompanyID string
	ProductID string
	Type      string // ver constantes MovementType*
	Quantity  decimal.Decimal
	UserID    *string   // nil si el actor ya no existe o no aplica
	CreatedAt time.Time // asignado por el servidor al escribir
}

// MovementWithDetails es la proyección para listados: movimiento más los
// datos del producto y el username del actor.
type MovementWithDetails struct {
	Movement
	ProductCode        string
	ProductDescription string
	Username           string
}

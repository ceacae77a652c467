package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountItem es una fila transitoria del conteo en curso: a lo sumo una por
// producto por tenant, con la cantidad acumulada por los escaneos. Se borra
// cuando la cantidad acumulada cae a cero o menos, o en bloque al finalizar
// el conteo.
type CountItem struct {
	ID           string
	CompanyID    string
	ProductID    string
	Quantity     decimal.Decimal
	RegisteredAt time.Time // ordena el listado (último escaneo primero)
}

// CountItemWithProduct es la proyección del listado: item más código,
// descripción y unidad del producto.
type CountItemWithProduct struct {
	CountItem
	ProductCode        string
	ProductDescription string
	ProductUnit        string
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOutMovement salida de stock: decrementa la cantidad del repuesto referenciado.
// UnitPrice es el precio al momento de la venta (snapshot histórico, independiente
// del precio actual del catálogo; nunca se recalcula). PartName es inmutable.
type StockOutMovement struct {
	ID        string
	PartName  string
	Quantity  int64           // siempre > 0
	UnitPrice decimal.Decimal // >= 0, snapshot al momento de la venta
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}

// Total valor de la salida (Quantity × UnitPrice). Columna generada en BD; derivado en lectura.
func (m *StockOutMovement) Total() decimal.Decimal {
	return decimal.NewFromInt(m.Quantity).Mul(m.UnitPrice)
}

package entity

import "time"

// StockInMovement entrada de stock: incrementa la cantidad del repuesto referenciado.
// PartName es inmutable después de crear el movimiento; reasignar a otro repuesto
// se modela como delete + create.
type StockInMovement struct {
	ID        string
	PartName  string
	Quantity  int64     // siempre > 0
	Date      time.Time // fecha calendario, sin componente horario
	CreatedAt time.Time
	CreatedBy string
}

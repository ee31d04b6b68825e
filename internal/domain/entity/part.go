package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del catálogo. Name es la clave primaria
// (sensible a mayúsculas). Quantity es el único agregado materializado:
// solo el motor de reconciliación lo muta como efecto de movimientos;
// el CRUD del catálogo puede fijarlo directamente (ajuste inicial implícito).
type Part struct {
	Name      string
	Category  string
	Quantity  int64
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalValue valor total del repuesto (Quantity × UnitPrice). Derivado, no se persiste.
func (p *Part) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(p.Quantity).Mul(p.UnitPrice)
}

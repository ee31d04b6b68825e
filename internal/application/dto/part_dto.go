package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdatePartRequest body para PUT /api/parts/:name. Campos nil no se tocan.
type UpdatePartRequest struct {
	Category  *string          `json:"category,omitempty"`
	Quantity  *int64           `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// PartResponse representación de un repuesto. TotalValue = Quantity × UnitPrice,
// redondeado a dos decimales para presentación.
type PartResponse struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PartListResponse listado de repuestos ordenado por nombre.
type PartListResponse struct {
	Parts []PartResponse `json:"parts"`
	Total int            `json:"total"`
}

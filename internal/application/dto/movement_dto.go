package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Las fechas de movimientos viajan como "YYYY-MM-DD" (fecha calendario,
// el componente horario no participa en la reconciliación).

// CreateStockInRequest body para POST /api/stock-in.
type CreateStockInRequest struct {
	PartName string `json:"part_name"`
	Quantity int64  `json:"quantity"`
	Date     string `json:"date"`
}

// UpdateStockInRequest body para PUT /api/stock-in/:id. No permite cambiar el repuesto.
type UpdateStockInRequest struct {
	Quantity int64  `json:"quantity"`
	Date     string `json:"date"`
}

// CreateStockOutRequest body para POST /api/stock-out. UnitPrice es el precio
// de venta en el momento de la transacción (snapshot, no el del catálogo).
type CreateStockOutRequest struct {
	PartName  string          `json:"part_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Date      string          `json:"date"`
}

// UpdateStockOutRequest body para PUT /api/stock-out/:id. UnitPrice reemplaza
// el snapshot histórico sin condiciones.
type UpdateStockOutRequest struct {
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Date      string          `json:"date"`
}

// StockInResponse representación de una entrada de stock.
type StockInResponse struct {
	ID        string    `json:"id"`
	PartName  string    `json:"part_name"`
	Quantity  int64     `json:"quantity"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// StockOutResponse representación de una salida. TotalPrice = Quantity × UnitPrice.
type StockOutResponse struct {
	ID         string          `json:"id"`
	PartName   string          `json:"part_name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Date       string          `json:"date"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MovementListQuery filtros de listado para ambos libros.
type MovementListQuery struct {
	Part string `query:"part"`
	Date string `query:"date"` // YYYY-MM-DD
	PageRequest
}

// StockInListResponse página de entradas de stock (fecha desc, creación desc).
type StockInListResponse struct {
	Movements []StockInResponse `json:"movements"`
	Page      PageResponse      `json:"page"`
}

// StockOutListResponse página de salidas de stock (fecha desc, creación desc).
type StockOutListResponse struct {
	Movements []StockOutResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// DateLayout formato de fecha calendario aceptado por la API.
const DateLayout = "2006-01-02"

package dto

import "github.com/shopspring/decimal"

// DailyStockOutSummary agregados del reporte diario de salidas.
type DailyStockOutSummary struct {
	Count         int             `json:"count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// DailyStockOutReportDTO salidas de una fecha calendario más sus agregados.
// Cero registros es un resultado válido, no un error.
type DailyStockOutReportDTO struct {
	Date    string               `json:"date"`
	Records []StockOutResponse   `json:"records"`
	Summary DailyStockOutSummary `json:"summary"`
}

// StockStatusItemDTO estado de un repuesto: cantidad actual contra su historia
// de movimientos. InitialQuantity es una reconstrucción solo para presentación
// (current + salidas − entradas, acotada a ≥ 0); nunca se escribe de vuelta.
type StockStatusItemDTO struct {
	PartName        string          `json:"part_name"`
	Category        string          `json:"category"`
	InitialQuantity int64           `json:"initial_quantity"`
	TotalStockIn    int64           `json:"total_stock_in"`
	TotalStockOut   int64           `json:"total_stock_out"`
	CurrentQuantity int64           `json:"current_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStock        bool            `json:"low_stock"`
}

// StockStatusSummary totales consolidados del reporte de estado.
type StockStatusSummary struct {
	TotalParts           int             `json:"total_parts"`
	TotalCurrentQuantity int64           `json:"total_current_quantity"`
	TotalCurrentValue    decimal.Decimal `json:"total_current_value"`
	LowStockItemsCount   int             `json:"low_stock_items_count"`
}

// StockStatusReportDTO tabla por repuesto, items en bajo stock y totales.
type StockStatusReportDTO struct {
	Parts         []StockStatusItemDTO `json:"parts"`
	LowStockItems []StockStatusItemDTO `json:"low_stock_items"`
	Summary       StockStatusSummary   `json:"summary"`
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// StockStatusRow fila cruda del reporte de estado de stock: catálogo más
// agregados del libro de movimientos (consulta read-only).
type StockStatusRow struct {
	PartName        string
	Category        string
	UnitPrice       decimal.Decimal
	CurrentQuantity int64
	TotalStockIn    int64
	TotalStockOut   int64
}

// ReportRepository consultas de solo lectura para el proyector de reportes.
// Nunca escribe; el estado autoritativo es siempre el del catálogo.
type ReportRepository interface {
	// DailyStockOut salidas cuya fecha calendario es exactamente date.
	DailyStockOut(ctx context.Context, date time.Time) ([]*entity.StockOutMovement, error)
	// StockStatus una fila por repuesto con sumatorias de entradas y salidas.
	StockStatus(ctx context.Context) ([]StockStatusRow, error)
}

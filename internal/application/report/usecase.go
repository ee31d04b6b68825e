// Package report contiene el proyector de reportes: agregados punto-en-el-tiempo
// derivados releyendo el libro de movimientos y el catálogo. Solo lectura;
// el estado autoritativo es siempre el del motor de reconciliación.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// LowStockThreshold cantidad por debajo de la cual un repuesto se marca en bajo stock.
const LowStockThreshold = 10

// ReportUseCase genera el reporte diario de salidas y el estado de stock.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// DailyStockOut salidas cuya fecha es exactamente dateStr (YYYY-MM-DD;
// vacío = la fecha actual). Cero registros es un resultado válido.
func (uc *ReportUseCase) DailyStockOut(ctx context.Context, dateStr string) (*dto.DailyStockOutReportDTO, error) {
	var date time.Time
	if dateStr == "" {
		now := time.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse(dto.DateLayout, dateStr)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = parsed
	}

	records, err := uc.repo.DailyStockOut(ctx, date)
	if err != nil {
		return nil, err
	}

	report := &dto.DailyStockOutReportDTO{
		Date:    date.Format(dto.DateLayout),
		Records: make([]dto.StockOutResponse, 0, len(records)),
		Summary: dto.DailyStockOutSummary{TotalValue: decimal.Zero},
	}
	for _, mv := range records {
		report.Records = append(report.Records, dto.StockOutResponse{
			ID:         mv.ID,
			PartName:   mv.PartName,
			Quantity:   mv.Quantity,
			UnitPrice:  mv.UnitPrice.Round(2),
			TotalPrice: mv.Total().Round(2),
			Date:       mv.Date.Format(dto.DateLayout),
			CreatedAt:  mv.CreatedAt,
		})
		report.Summary.Count++
		report.Summary.TotalQuantity += mv.Quantity
		report.Summary.TotalValue = report.Summary.TotalValue.Add(mv.Total())
	}
	report.Summary.TotalValue = report.Summary.TotalValue.Round(2)
	return report, nil
}

// StockStatus estado actual contra historia para cada repuesto del catálogo.
// InitialQuantity = current + salidas − entradas es una reconstrucción de
// auditoría solo para presentación; no se escribe de vuelta al catálogo.
func (uc *ReportUseCase) StockStatus(ctx context.Context) (*dto.StockStatusReportDTO, error) {
	rows, err := uc.repo.StockStatus(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.StockStatusReportDTO{
		Parts:         make([]dto.StockStatusItemDTO, 0, len(rows)),
		LowStockItems: []dto.StockStatusItemDTO{},
		Summary: dto.StockStatusSummary{
			TotalCurrentValue: decimal.Zero,
		},
	}
	for _, row := range rows {
		current := row.CurrentQuantity
		if current < 0 {
			// El invariante lo impide; se acota por defensa del reporte.
			current = 0
		}
		initial := current + row.TotalStockOut - row.TotalStockIn
		if initial < 0 {
			initial = 0
		}
		item := dto.StockStatusItemDTO{
			PartName:        row.PartName,
			Category:        row.Category,
			InitialQuantity: initial,
			TotalStockIn:    row.TotalStockIn,
			TotalStockOut:   row.TotalStockOut,
			CurrentQuantity: current,
			UnitPrice:       row.UnitPrice.Round(2),
			TotalValue:      decimal.NewFromInt(current).Mul(row.UnitPrice).Round(2),
			LowStock:        current < LowStockThreshold,
		}
		report.Parts = append(report.Parts, item)
		report.Summary.TotalParts++
		report.Summary.TotalCurrentQuantity += current
		report.Summary.TotalCurrentValue = report.Summary.TotalCurrentValue.Add(item.TotalValue)
		if item.LowStock {
			report.LowStockItems = append(report.LowStockItems, item)
			report.Summary.LowStockItemsCount++
		}
	}
	report.Summary.TotalCurrentValue = report.Summary.TotalCurrentValue.Round(2)
	return report, nil
}

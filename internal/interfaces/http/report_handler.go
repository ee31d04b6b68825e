package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
)

// ReportHandler maneja las peticiones HTTP de reportes (solo lectura).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DailyStockOut godoc
// @Summary      Reporte diario de salidas
// @Description  Salidas cuya fecha es exactamente la indicada (por defecto,
//               la fecha actual) más agregados. Cero registros es válido.
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (vacío = hoy)"
// @Success      200   {object}  dto.DailyStockOutReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/daily-stock-out [get]
func (h *ReportHandler) DailyStockOut(c *fiber.Ctx) error {
	rep, err := h.uc.DailyStockOut(c.Context(), c.Query("date"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

// StockStatus godoc
// @Summary      Reporte de estado de stock
// @Description  Cantidad actual contra historia de movimientos por repuesto,
//               con marca de bajo stock (< 10) y totales consolidados.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StockStatusReportDTO
// @Router       /api/reports/stock-status [get]
func (h *ReportHandler) StockStatus(c *fiber.Ctx) error {
	rep, err := h.uc.StockStatus(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

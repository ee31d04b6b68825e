package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PartUC   *catalog.PartUseCase
	StockUC  *inventory.StockUseCase
	ReportUC *report.ReportUseCase
	// JWTSecret vacío deja la API abierta (solo desarrollo); la emisión de
	// tokens es responsabilidad del gateway de autenticación.
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	// Catálogo de repuestos
	parts := api.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:name", partHandler.Get)
	parts.Put("/:name", partHandler.Update)
	parts.Delete("/:name", partHandler.Delete)

	// Libros de movimientos (motor de reconciliación)
	stockHandler := NewStockHandler(deps.StockUC)
	stockIn := api.Group("/stock-in")
	stockIn.Post("/", stockHandler.CreateStockIn)
	stockIn.Get("/", stockHandler.ListStockIn)
	stockIn.Put("/:id", stockHandler.UpdateStockIn)
	stockIn.Delete("/:id", stockHandler.DeleteStockIn)

	stockOut := api.Group("/stock-out")
	stockOut.Post("/", stockHandler.CreateStockOut)
	stockOut.Get("/", stockHandler.ListStockOut)
	stockOut.Put("/:id", stockHandler.UpdateStockOut)
	stockOut.Delete("/:id", stockHandler.DeleteStockOut)

	// Reportes (solo lectura)
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/daily-stock-out", reportHandler.DailyStockOut)
	reports.Get("/stock-status", reportHandler.StockStatus)
}

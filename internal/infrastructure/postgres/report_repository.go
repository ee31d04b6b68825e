package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el proyector de reportes.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// DailyStockOut salidas cuya fecha calendario es exactamente date.
func (r *ReportRepo) DailyStockOut(ctx context.Context, date time.Time) ([]*entity.StockOutMovement, error) {
	const query = `
		SELECT id, part_name, quantity, unit_price, date, created_at, COALESCE(created_by, '')
		FROM stock_out_movements
		WHERE date = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("report.DailyStockOut: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockOutMovement
	for rows.Next() {
		var m entity.StockOutMovement
		if err := rows.Scan(&m.ID, &m.PartName, &m.Quantity, &m.UnitPrice, &m.Date, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("report.DailyStockOut scan: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// StockStatus una fila por repuesto: catálogo más sumatorias del libro.
// Usa COALESCE para devolver cero en repuestos sin movimientos.
func (r *ReportRepo) StockStatus(ctx context.Context) ([]repository.StockStatusRow, error) {
	const query = `
	SELECT
	    p.name,
	    p.category,
	    p.unit_price,
	    p.quantity                          AS current_quantity,
	    COALESCE(si.total_qty, 0)           AS total_stock_in,
	    COALESCE(so.total_qty, 0)           AS total_stock_out
	FROM parts p
	LEFT JOIN (
	    SELECT part_name, SUM(quantity) AS total_qty
	    FROM stock_in_movements GROUP BY part_name
	) si ON si.part_name = p.name
	LEFT JOIN (
	    SELECT part_name, SUM(quantity) AS total_qty
	    FROM stock_out_movements GROUP BY part_name
	) so ON so.part_name = p.name
	ORDER BY p.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("report.StockStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.StockStatusRow
	for rows.Next() {
		var row repository.StockStatusRow
		if err := rows.Scan(
			&row.PartName,
			&row.Category,
			&row.UnitPrice,
			&row.CurrentQuantity,
			&row.TotalStockIn,
			&row.TotalStockOut,
		); err != nil {
			return nil, fmt.Errorf("report.StockStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

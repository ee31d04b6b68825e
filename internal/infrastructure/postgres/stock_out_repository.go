package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

// StockOutRepo implementación sobre PostgreSQL (usable con pool o tx).
// total_price es columna generada (quantity * unit_price): se lee, nunca se escribe.
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

// Create persiste una salida de stock con el snapshot de precio.
func (r *StockOutRepo) Create(m *entity.StockOutMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_out_movements (id, part_name, quantity, unit_price, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PartName, m.Quantity, m.UnitPrice, m.Date, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock-out: %w", err)
	}
	return nil
}

// GetByID obtiene una salida por ID.
func (r *StockOutRepo) GetByID(id string) (*entity.StockOutMovement, error) {
	query := `
		SELECT id, part_name, quantity, unit_price, date, created_at, created_by
		FROM stock_out_movements WHERE id = $1`
	var m entity.StockOutMovement
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.PartName, &m.Quantity, &m.UnitPrice, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-out: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// Update persiste cantidad, precio y fecha. PartName no se toca: es inmutable.
func (r *StockOutRepo) Update(m *entity.StockOutMovement) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_out_movements SET quantity = $2, unit_price = $3, date = $4 WHERE id = $1`,
		m.ID, m.Quantity, m.UnitPrice, m.Date,
	)
	if err != nil {
		return fmt.Errorf("update stock-out: %w", err)
	}
	return nil
}

// Delete elimina una salida por ID.
func (r *StockOutRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_out_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock-out: %w", err)
	}
	return nil
}

// List lista salidas con filtros opcionales, ordenadas por (fecha desc, creación desc).
func (r *StockOutRepo) List(f repository.MovementFilter) ([]*entity.StockOutMovement, error) {
	query := `
		SELECT id, part_name, quantity, unit_price, date, created_at, created_by
		FROM stock_out_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if f.PartName != "" {
		query += fmt.Sprintf(" AND part_name = $%d", pos)
		args = append(args, f.PartName)
		pos++
	}
	if f.Date != nil {
		query += fmt.Sprintf(" AND date = $%d", pos)
		args = append(args, *f.Date)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock-out: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockOutMovement
	for rows.Next() {
		var m entity.StockOutMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.PartName, &m.Quantity, &m.UnitPrice, &m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock-out: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByPart elimina todas las salidas del repuesto (cascada del catálogo).
func (r *StockOutRepo) DeleteByPart(partName string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_out_movements WHERE part_name = $1`, partName)
	if err != nil {
		return fmt.Errorf("delete stock-out by part: %w", err)
	}
	return nil
}

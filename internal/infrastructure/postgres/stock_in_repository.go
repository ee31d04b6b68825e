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

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create persiste una entrada de stock.
func (r *StockInRepo) Create(m *entity.StockInMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_in_movements (id, part_name, quantity, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PartName, m.Quantity, m.Date, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock-in: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *StockInRepo) GetByID(id string) (*entity.StockInMovement, error) {
	query := `
		SELECT id, part_name, quantity, date, created_at, created_by
		FROM stock_in_movements WHERE id = $1`
	var m entity.StockInMovement
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.PartName, &m.Quantity, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-in: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// Update persiste cantidad y fecha. PartName no se toca: es inmutable.
func (r *StockInRepo) Update(m *entity.StockInMovement) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_in_movements SET quantity = $2, date = $3 WHERE id = $1`,
		m.ID, m.Quantity, m.Date,
	)
	if err != nil {
		return fmt.Errorf("update stock-in: %w", err)
	}
	return nil
}

// Delete elimina una entrada por ID.
func (r *StockInRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_in_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock-in: %w", err)
	}
	return nil
}

// List lista entradas con filtros opcionales, ordenadas por (fecha desc, creación desc).
func (r *StockInRepo) List(f repository.MovementFilter) ([]*entity.StockInMovement, error) {
	query := `
		SELECT id, part_name, quantity, date, created_at, created_by
		FROM stock_in_movements WHERE 1=1`
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
		return nil, fmt.Errorf("list stock-in: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockInMovement
	for rows.Next() {
		var m entity.StockInMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.PartName, &m.Quantity, &m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock-in: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByPart elimina todas las entradas del repuesto (cascada del catálogo).
func (r *StockInRepo) DeleteByPart(partName string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_in_movements WHERE part_name = $1`, partName)
	if err != nil {
		return fmt.Errorf("delete stock-in by part: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un repuesto nuevo. Nombre duplicado -> domain.ErrDuplicate.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (name, category, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		part.Name, part.Category, part.Quantity, part.UnitPrice, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByName obtiene un repuesto por nombre (sensible a mayúsculas).
func (r *PartRepo) GetByName(name string) (*entity.Part, error) {
	query := `
		SELECT name, category, quantity, unit_price, created_at, updated_at
		FROM parts WHERE name = $1`
	return r.scanOne(query, name, "get part")
}

// GetByNameForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE).
// La fila del repuesto es el punto de serialización del motor de reconciliación.
func (r *PartRepo) GetByNameForUpdate(name string) (*entity.Part, error) {
	query := `
		SELECT name, category, quantity, unit_price, created_at, updated_at
		FROM parts WHERE name = $1
		FOR UPDATE`
	return r.scanOne(query, name, "get part for update")
}

func (r *PartRepo) scanOne(query, name, op string) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&p.Name, &p.Category, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// Update actualiza categoría, cantidad y precio de un repuesto existente.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts SET category = $2, quantity = $3, unit_price = $4, updated_at = $5
		WHERE name = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		part.Name, part.Category, part.Quantity, part.UnitPrice, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad materializada (usado por el motor de reconciliación).
func (r *PartRepo) UpdateQuantity(name string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE parts SET quantity = $2, updated_at = now() WHERE name = $1`,
		name, quantity,
	)
	if err != nil {
		return fmt.Errorf("update part quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los repuestos ordenados por nombre.
func (r *PartRepo) List() ([]*entity.Part, error) {
	query := `
		SELECT name, category, quantity, unit_price, created_at, updated_at
		FROM parts ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.Name, &p.Category, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un repuesto por nombre. Los movimientos se borran antes en la
// misma transacción (cascada del caso de uso de catálogo).
func (r *PartRepo) Delete(name string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// El mismo runner satisface ambos puertos de transacción.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Cualquier error de fn (validación de invariantes o fallo
// de storage) deshace todas las escrituras parciales antes de propagarse.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	partRepo := NewPartRepository(tx)
	stockInRepo := NewStockInRepository(tx)
	stockOutRepo := NewStockOutRepository(tx)

	if err := fn(partRepo, stockInRepo, stockOutRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

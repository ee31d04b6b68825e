package inventory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// reconciliación: o se persisten todas las escrituras o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error) error
}

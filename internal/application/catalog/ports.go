package catalog

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner transacción para el borrado en cascada: repuesto y sus movimientos
// deben desaparecer juntos o no desaparecer. Misma firma que inventory.TxRunner,
// así el runner de infraestructura satisface ambos puertos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error) error
}

package repository

import (
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos del libro de stock.
type MovementFilter struct {
	PartName string     // vacío = todos los repuestos
	Date     *time.Time // nil = cualquier fecha
	Limit    int
	Offset   int
}

// StockInRepository puerto de persistencia para entradas de stock.
// GetByID devuelve (nil, nil) si el movimiento no existe.
type StockInRepository interface {
	Create(m *entity.StockInMovement) error
	GetByID(id string) (*entity.StockInMovement, error)
	// Update persiste solo Quantity y Date; PartName es inmutable.
	Update(m *entity.StockInMovement) error
	Delete(id string) error
	List(f MovementFilter) ([]*entity.StockInMovement, error)
	// DeleteByPart elimina todas las entradas del repuesto (cascada al borrar el catálogo).
	DeleteByPart(partName string) error
}

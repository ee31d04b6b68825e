package repository

import "github.com/jhoicas/Repuestos-api/internal/domain/entity"

// StockOutRepository puerto de persistencia para salidas de stock.
// GetByID devuelve (nil, nil) si el movimiento no existe.
type StockOutRepository interface {
	Create(m *entity.StockOutMovement) error
	GetByID(id string) (*entity.StockOutMovement, error)
	// Update persiste Quantity, UnitPrice y Date; PartName es inmutable.
	Update(m *entity.StockOutMovement) error
	Delete(id string) error
	List(f MovementFilter) ([]*entity.StockOutMovement, error)
	DeleteByPart(partName string) error
}

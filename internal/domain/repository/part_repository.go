package repository

import "github.com/jhoicas/Repuestos-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para Part (DIP).
// Los getters devuelven (nil, nil) si el repuesto no existe.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByName(name string) (*entity.Part, error)
	// GetByNameForUpdate bloquea la fila del repuesto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; la fila es el punto de
	// serialización de todo el motor de reconciliación.
	GetByNameForUpdate(name string) (*entity.Part, error)
	Update(part *entity.Part) error
	// UpdateQuantity fija la cantidad materializada. Reservado al motor de
	// reconciliación dentro de una transacción.
	UpdateQuantity(name string, quantity int64) error
	List() ([]*entity.Part, error)
	Delete(name string) error
}

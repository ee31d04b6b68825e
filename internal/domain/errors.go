package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidOperation  = errors.New("la operación dejaría la cantidad en negativo")
)

// InsufficientStockError rechazo de una salida por falta de stock.
// El mensaje incluye la cantidad disponible; errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	PartName  string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.PartName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

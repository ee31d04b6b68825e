package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

func TestPart_TotalValue(t *testing.T) {
	p := entity.Part{Quantity: 10, UnitPrice: decimal.NewFromFloat(499.99)}
	assert.True(t, p.TotalValue().Equal(decimal.NewFromFloat(4999.90)),
		"esperado 4999.90, fue %s", p.TotalValue())

	empty := entity.Part{Quantity: 0, UnitPrice: decimal.NewFromInt(500)}
	assert.True(t, empty.TotalValue().IsZero())
}

func TestStockOutMovement_Total(t *testing.T) {
	mv := entity.StockOutMovement{Quantity: 4, UnitPrice: decimal.NewFromInt(500)}
	assert.True(t, mv.Total().Equal(decimal.NewFromInt(2000)))
}

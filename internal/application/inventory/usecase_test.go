package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testDate = "2025-01-01"

func newEngine(t *testing.T) (*inventory.StockUseCase, *memState) {
	t.Helper()
	state := newMemState()
	runner := &memTxRunner{state: state}
	uc := inventory.NewStockUseCase(runner, &memStockInRepo{s: state}, &memStockOutRepo{s: state})
	return uc, state
}

func seedPart(state *memState, name string, quantity int64, unitPrice int64) {
	state.parts[name] = &entity.Part{
		Name:      name,
		Category:  "Engine",
		Quantity:  quantity,
		UnitPrice: decimal.NewFromInt(unitPrice),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// sumLedger suma entradas y salidas del repuesto directamente desde el estado.
func sumLedger(state *memState, part string) (in int64, out int64) {
	for _, m := range state.stockIn {
		if m.PartName == part {
			in += m.Quantity
		}
	}
	for _, m := range state.stockOut {
		if m.PartName == part {
			out += m.Quantity
		}
	}
	return in, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateStockIn_SumaCantidad(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockIn(context.Background(), "user-1", dto.CreateStockInRequest{
		PartName: "Filter", Quantity: 5, Date: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Filter", resp.PartName)
	assert.Equal(t, int64(5), resp.Quantity)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, int64(15), state.parts["Filter"].Quantity)
	assert.Len(t, state.stockIn, 1)
}

func TestCreateStockIn_RepuestoNoExiste(t *testing.T) {
	uc, state := newEngine(t)

	_, err := uc.CreateStockIn(context.Background(), "", dto.CreateStockInRequest{
		PartName: "Ghost", Quantity: 5, Date: testDate,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, state.stockIn, "no debe quedar movimiento huérfano")
}

func TestCreateStockIn_EntradaInvalida(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	cases := []dto.CreateStockInRequest{
		{PartName: "", Quantity: 5, Date: testDate},
		{PartName: "Filter", Quantity: 0, Date: testDate},
		{PartName: "Filter", Quantity: -3, Date: testDate},
		{PartName: "Filter", Quantity: 5, Date: "01/01/2025"},
	}
	for _, in := range cases {
		_, err := uc.CreateStockIn(context.Background(), "", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, int64(10), state.parts["Filter"].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas de stock
// ──────────────────────────────────────────────────────────────────────────────

// Crear Part("Filter","Engine",10,500) y sacar 4 a 500 debe dejar cantidad 6
// y un movimiento con total 2000.
func TestCreateStockOut_Exito(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockOut(context.Background(), "user-1", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 4, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), state.parts["Filter"].Quantity)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(2000)),
		"total esperado 2000, fue %s", resp.TotalPrice)
}

// Sacar 12 con 10 disponibles debe fallar con stock insuficiente (indicando lo
// disponible) y no tocar ni el catálogo ni el libro.
func TestCreateStockOut_StockInsuficiente(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	_, err := uc.CreateStockOut(context.Background(), "user-1", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 12, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(10), insufficient.Available)
	assert.Contains(t, err.Error(), "disponible 10")

	assert.Equal(t, int64(10), state.parts["Filter"].Quantity, "el catálogo no debe cambiar")
	assert.Empty(t, state.stockOut, "el libro no debe cambiar")
}

func TestCreateStockOut_PrecioNegativo(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	_, err := uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 1, UnitPrice: decimal.NewFromInt(-1), Date: testDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El precio de la salida es un snapshot: no tiene por qué coincidir con el
// precio actual del catálogo.
func TestCreateStockOut_PrecioEsSnapshot(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 2, UnitPrice: decimal.NewFromInt(750), Date: testDate,
	})
	require.NoError(t, err)
	assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(750)))
	assert.True(t, state.stockOut[resp.ID].UnitPrice.Equal(decimal.NewFromInt(750)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ediciones
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStockIn_RederivaCantidad(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockIn(context.Background(), "", dto.CreateStockInRequest{
		PartName: "Filter", Quantity: 5, Date: testDate,
	})
	require.NoError(t, err)
	require.Equal(t, int64(15), state.parts["Filter"].Quantity)

	// 5 -> 8: delta +3
	err = uc.UpdateStockIn(context.Background(), resp.ID, dto.UpdateStockInRequest{
		Quantity: 8, Date: "2025-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(18), state.parts["Filter"].Quantity)
	assert.Equal(t, int64(8), state.stockIn[resp.ID].Quantity)
	assert.Equal(t, "2025-02-01", state.stockIn[resp.ID].Date.Format(dto.DateLayout))
}

func TestUpdateStockIn_AbortaSiQuedaNegativo(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 0, 500)

	resp, err := uc.CreateStockIn(context.Background(), "", dto.CreateStockInRequest{
		PartName: "Filter", Quantity: 10, Date: testDate,
	})
	require.NoError(t, err)

	// Ya se vendieron 8 de esas 10; reducir la entrada a 1 dejaría -1.
	_, err = uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 8, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)

	err = uc.UpdateStockIn(context.Background(), resp.ID, dto.UpdateStockInRequest{
		Quantity: 1, Date: testDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Equal(t, int64(2), state.parts["Filter"].Quantity, "estado intacto tras abortar")
	assert.Equal(t, int64(10), state.stockIn[resp.ID].Quantity)
}

// Otra tx edita el mismo movimiento (5→8, repuesto 15→18) y confirma mientras
// esta espera el lock de la fila. El delta debe calcularse con la relectura ya
// bloqueada: 18 + (6 − 8) = 16, no con la cantidad obsoleta de la primera lectura.
func TestUpdateStockIn_EdicionConcurrenteDuranteElLock(t *testing.T) {
	state := newMemState()
	seedPart(state, "Filter", 15, 500)
	state.stockIn["mv-1"] = &entity.StockInMovement{
		ID: "mv-1", PartName: "Filter", Quantity: 5,
		Date: time.Now(), CreatedAt: time.Now(),
	}
	runner := &memTxRunner{state: state, onForUpdate: func(tx *memState) {
		tx.stockIn["mv-1"].Quantity = 8
		tx.parts["Filter"].Quantity = 18
	}}
	uc := inventory.NewStockUseCase(runner, &memStockInRepo{s: state}, &memStockOutRepo{s: state})

	err := uc.UpdateStockIn(context.Background(), "mv-1", dto.UpdateStockInRequest{
		Quantity: 6, Date: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(16), state.parts["Filter"].Quantity)
	assert.Equal(t, int64(6), state.stockIn["mv-1"].Quantity)
}

// Variante de borrado: otra tx reduce la salida de 4 a 2 (devolviendo 2 al
// repuesto) mientras esta espera el lock. El borrado debe devolver la cantidad
// que el movimiento tiene ya bloqueada la fila, no la de la lectura previa.
func TestDeleteStockOut_EdicionConcurrenteDuranteElLock(t *testing.T) {
	state := newMemState()
	seedPart(state, "Filter", 6, 500)
	state.stockOut["mv-1"] = &entity.StockOutMovement{
		ID: "mv-1", PartName: "Filter", Quantity: 4,
		UnitPrice: decimal.NewFromInt(500), Date: time.Now(), CreatedAt: time.Now(),
	}
	runner := &memTxRunner{state: state, onForUpdate: func(tx *memState) {
		tx.stockOut["mv-1"].Quantity = 2
		tx.parts["Filter"].Quantity = 8
	}}
	uc := inventory.NewStockUseCase(runner, &memStockInRepo{s: state}, &memStockOutRepo{s: state})

	require.NoError(t, uc.DeleteStockOut(context.Background(), "mv-1"))
	assert.Equal(t, int64(10), state.parts["Filter"].Quantity)
	assert.Empty(t, state.stockOut)
}

// Si otra tx borró el movimiento mientras esta esperaba el lock, la relectura
// lo detecta y la operación termina en no-encontrado sin mutar nada.
func TestUpdateStockIn_BorradoConcurrenteDuranteElLock(t *testing.T) {
	state := newMemState()
	seedPart(state, "Filter", 15, 500)
	state.stockIn["mv-1"] = &entity.StockInMovement{
		ID: "mv-1", PartName: "Filter", Quantity: 5,
		Date: time.Now(), CreatedAt: time.Now(),
	}
	runner := &memTxRunner{state: state, onForUpdate: func(tx *memState) {
		delete(tx.stockIn, "mv-1")
		tx.parts["Filter"].Quantity = 10
	}}
	uc := inventory.NewStockUseCase(runner, &memStockInRepo{s: state}, &memStockOutRepo{s: state})

	err := uc.UpdateStockIn(context.Background(), "mv-1", dto.UpdateStockInRequest{
		Quantity: 6, Date: testDate,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(15), state.parts["Filter"].Quantity, "rollback: el estado visible no cambia")
}

func TestUpdateStockIn_NoEncontrado(t *testing.T) {
	uc, _ := newEngine(t)
	err := uc.UpdateStockIn(context.Background(), "missing", dto.UpdateStockInRequest{
		Quantity: 1, Date: testDate,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStockOut_DeltaInvertido(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 4, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), state.parts["Filter"].Quantity)

	// 4 -> 2: la salida se reduce, el disponible sube a 8. El precio se
	// sobreescribe sin condiciones.
	err = uc.UpdateStockOut(context.Background(), resp.ID, dto.UpdateStockOutRequest{
		Quantity: 2, UnitPrice: decimal.NewFromInt(600), Date: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), state.parts["Filter"].Quantity)
	assert.True(t, state.stockOut[resp.ID].UnitPrice.Equal(decimal.NewFromInt(600)))
}

func TestUpdateStockOut_AbortaSiQuedaNegativo(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 4, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)

	// 4 -> 20: harían falta 16 más y solo quedan 6.
	err = uc.UpdateStockOut(context.Background(), resp.ID, dto.UpdateStockOutRequest{
		Quantity: 20, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Equal(t, int64(6), state.parts["Filter"].Quantity)
	assert.Equal(t, int64(4), state.stockOut[resp.ID].Quantity)
}

// El estado final de editar la cantidad debe coincidir con borrar y recrear
// con la nueva cantidad; la edición solo preserva la identidad del movimiento.
func TestUpdate_EquivaleABorrarYRecrear(t *testing.T) {
	ctx := context.Background()

	ucA, stateA := newEngine(t)
	seedPart(stateA, "Filter", 10, 500)
	respA, err := ucA.CreateStockIn(ctx, "", dto.CreateStockInRequest{PartName: "Filter", Quantity: 5, Date: testDate})
	require.NoError(t, err)
	require.NoError(t, ucA.UpdateStockIn(ctx, respA.ID, dto.UpdateStockInRequest{Quantity: 9, Date: testDate}))

	ucB, stateB := newEngine(t)
	seedPart(stateB, "Filter", 10, 500)
	respB, err := ucB.CreateStockIn(ctx, "", dto.CreateStockInRequest{PartName: "Filter", Quantity: 5, Date: testDate})
	require.NoError(t, err)
	require.NoError(t, ucB.DeleteStockIn(ctx, respB.ID))
	_, err = ucB.CreateStockIn(ctx, "", dto.CreateStockInRequest{PartName: "Filter", Quantity: 9, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, stateA.parts["Filter"].Quantity, stateB.parts["Filter"].Quantity)
	inA, outA := sumLedger(stateA, "Filter")
	inB, outB := sumLedger(stateB, "Filter")
	assert.Equal(t, inA, inB)
	assert.Equal(t, outA, outB)
	// La edición preserva la identidad; borrar y recrear no.
	_, exists := stateA.stockIn[respA.ID]
	assert.True(t, exists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrados
// ──────────────────────────────────────────────────────────────────────────────

// Crear con Q, entrar Δ y borrar esa entrada debe restaurar exactamente Q.
func TestDeleteStockIn_RoundTrip(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 7, 500)

	resp, err := uc.CreateStockIn(context.Background(), "", dto.CreateStockInRequest{
		PartName: "Filter", Quantity: 13, Date: testDate,
	})
	require.NoError(t, err)
	require.Equal(t, int64(20), state.parts["Filter"].Quantity)

	require.NoError(t, uc.DeleteStockIn(context.Background(), resp.ID))
	assert.Equal(t, int64(7), state.parts["Filter"].Quantity)
	assert.Empty(t, state.stockIn)
}

func TestDeleteStockIn_RechazadoSiSubstockea(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 0, 500)

	resp, err := uc.CreateStockIn(context.Background(), "", dto.CreateStockInRequest{
		PartName: "Filter", Quantity: 10, Date: testDate,
	})
	require.NoError(t, err)
	_, err = uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 6, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), state.parts["Filter"].Quantity)

	// Quitar la entrada de 10 dejaría 4 - 10 = -6.
	err = uc.DeleteStockIn(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Equal(t, int64(4), state.parts["Filter"].Quantity)
	assert.Len(t, state.stockIn, 1, "la entrada debe seguir en el libro")
}

// Borrar una salida siempre es legal y devuelve exactamente su cantidad.
func TestDeleteStockOut_SiempreLegal(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)

	resp, err := uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 10, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), state.parts["Filter"].Quantity)

	require.NoError(t, uc.DeleteStockOut(context.Background(), resp.ID))
	assert.Equal(t, int64(10), state.parts["Filter"].Quantity)
	assert.Empty(t, state.stockOut)
}

func TestDeleteStockOut_NoEncontrado(t *testing.T) {
	uc, _ := newEngine(t)
	err := uc.DeleteStockOut(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de reconciliación
// ──────────────────────────────────────────────────────────────────────────────

// Tras cada operación de una secuencia arbitraria, la cantidad del repuesto
// debe ser igual a inicial + Σ entradas − Σ salidas.
func TestSecuencia_InvarianteDeSuma(t *testing.T) {
	uc, state := newEngine(t)
	const initial = int64(20)
	seedPart(state, "Filter", initial, 500)
	ctx := context.Background()

	checkInvariant := func() {
		t.Helper()
		in, out := sumLedger(state, "Filter")
		assert.Equal(t, initial+in-out, state.parts["Filter"].Quantity)
	}

	inResp, err := uc.CreateStockIn(ctx, "", dto.CreateStockInRequest{PartName: "Filter", Quantity: 15, Date: testDate})
	require.NoError(t, err)
	checkInvariant()

	outResp, err := uc.CreateStockOut(ctx, "", dto.CreateStockOutRequest{PartName: "Filter", Quantity: 30, UnitPrice: decimal.NewFromInt(100), Date: testDate})
	require.NoError(t, err)
	checkInvariant()

	require.NoError(t, uc.UpdateStockIn(ctx, inResp.ID, dto.UpdateStockInRequest{Quantity: 25, Date: testDate}))
	checkInvariant()

	require.NoError(t, uc.UpdateStockOut(ctx, outResp.ID, dto.UpdateStockOutRequest{Quantity: 12, UnitPrice: decimal.NewFromInt(100), Date: testDate}))
	checkInvariant()

	require.NoError(t, uc.DeleteStockOut(ctx, outResp.ID))
	checkInvariant()

	require.NoError(t, uc.DeleteStockIn(ctx, inResp.ID))
	checkInvariant()

	// Se revirtió todo: debe quedar la cantidad inicial.
	assert.Equal(t, initial, state.parts["Filter"].Quantity)
}

// Operaciones sobre un repuesto no deben tocar los demás.
func TestOperaciones_NoAfectanOtrosRepuestos(t *testing.T) {
	uc, state := newEngine(t)
	seedPart(state, "Filter", 10, 500)
	seedPart(state, "Brake", 3, 900)

	_, err := uc.CreateStockOut(context.Background(), "", dto.CreateStockOutRequest{
		PartName: "Filter", Quantity: 4, UnitPrice: decimal.NewFromInt(500), Date: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), state.parts["Brake"].Quantity)
}

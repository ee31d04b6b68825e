package inventory_test

import (
	"context"
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner ejecuta fn sobre una copia del estado y solo la
// promueve en Commit, igual que una transacción real: si fn falla, el estado
// visible queda intacto.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	parts    map[string]*entity.Part
	stockIn  map[string]*entity.StockInMovement
	stockOut map[string]*entity.StockOutMovement
}

func newMemState() *memState {
	return &memState{
		parts:    map[string]*entity.Part{},
		stockIn:  map[string]*entity.StockInMovement{},
		stockOut: map[string]*entity.StockOutMovement{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.parts {
		cp := *v
		c.parts[k] = &cp
	}
	for k, v := range s.stockIn {
		cp := *v
		c.stockIn[k] = &cp
	}
	for k, v := range s.stockOut {
		cp := *v
		c.stockOut[k] = &cp
	}
	return c
}

type memTxRunner struct {
	state *memState
	// onForUpdate simula una tx concurrente que confirma mientras esta espera
	// el lock de la fila: se aplica sobre el estado visible justo al concederse
	// GetByNameForUpdate (READ COMMITTED: las lecturas posteriores la ven).
	onForUpdate func(tx *memState)
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	partRepo repository.PartRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) error) error {
	tx := r.state.clone()
	partRepo := &memPartRepo{s: tx}
	if r.onForUpdate != nil {
		hook := r.onForUpdate
		partRepo.onForUpdate = func() { hook(tx) }
	}
	err := fn(partRepo, &memStockInRepo{s: tx}, &memStockOutRepo{s: tx})
	if err != nil {
		return err // rollback: se descarta la copia
	}
	*r.state = *tx
	return nil
}

type memPartRepo struct {
	s           *memState
	onForUpdate func()
}

func (r *memPartRepo) Create(p *entity.Part) error {
	cp := *p
	r.s.parts[p.Name] = &cp
	return nil
}

func (r *memPartRepo) GetByName(name string) (*entity.Part, error) {
	p, ok := r.s.parts[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPartRepo) GetByNameForUpdate(name string) (*entity.Part, error) {
	if r.onForUpdate != nil {
		r.onForUpdate()
		r.onForUpdate = nil
	}
	return r.GetByName(name)
}

func (r *memPartRepo) Update(p *entity.Part) error {
	cp := *p
	r.s.parts[p.Name] = &cp
	return nil
}

func (r *memPartRepo) UpdateQuantity(name string, quantity int64) error {
	r.s.parts[name].Quantity = quantity
	return nil
}

func (r *memPartRepo) List() ([]*entity.Part, error) {
	var list []*entity.Part
	for _, p := range r.s.parts {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memPartRepo) Delete(name string) error {
	delete(r.s.parts, name)
	return nil
}

type memStockInRepo struct{ s *memState }

func (r *memStockInRepo) Create(m *entity.StockInMovement) error {
	cp := *m
	r.s.stockIn[m.ID] = &cp
	return nil
}

func (r *memStockInRepo) GetByID(id string) (*entity.StockInMovement, error) {
	m, ok := r.s.stockIn[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memStockInRepo) Update(m *entity.StockInMovement) error {
	stored := r.s.stockIn[m.ID]
	stored.Quantity = m.Quantity
	stored.Date = m.Date
	return nil
}

func (r *memStockInRepo) Delete(id string) error {
	delete(r.s.stockIn, id)
	return nil
}

func (r *memStockInRepo) List(f repository.MovementFilter) ([]*entity.StockInMovement, error) {
	var list []*entity.StockInMovement
	for _, m := range r.s.stockIn {
		if f.PartName != "" && m.PartName != f.PartName {
			continue
		}
		if f.Date != nil && !m.Date.Equal(*f.Date) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *memStockInRepo) DeleteByPart(partName string) error {
	for id, m := range r.s.stockIn {
		if m.PartName == partName {
			delete(r.s.stockIn, id)
		}
	}
	return nil
}

type memStockOutRepo struct{ s *memState }

func (r *memStockOutRepo) Create(m *entity.StockOutMovement) error {
	cp := *m
	r.s.stockOut[m.ID] = &cp
	return nil
}

func (r *memStockOutRepo) GetByID(id string) (*entity.StockOutMovement, error) {
	m, ok := r.s.stockOut[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memStockOutRepo) Update(m *entity.StockOutMovement) error {
	stored := r.s.stockOut[m.ID]
	stored.Quantity = m.Quantity
	stored.UnitPrice = m.UnitPrice
	stored.Date = m.Date
	return nil
}

func (r *memStockOutRepo) Delete(id string) error {
	delete(r.s.stockOut, id)
	return nil
}

func (r *memStockOutRepo) List(f repository.MovementFilter) ([]*entity.StockOutMovement, error) {
	var list []*entity.StockOutMovement
	for _, m := range r.s.stockOut {
		if f.PartName != "" && m.PartName != f.PartName {
			continue
		}
		if f.Date != nil && !m.Date.Equal(*f.Date) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *memStockOutRepo) DeleteByPart(partName string) error {
	for id, m := range r.s.stockOut {
		if m.PartName == partName {
			delete(r.s.stockOut, id)
		}
	}
	return nil
}

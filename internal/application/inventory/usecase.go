package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// StockUseCase es el motor de reconciliación: el único camino de código que
// muta Part.Quantity como efecto de un movimiento. Cada operación corre en una
// transacción (TxRunner) con la fila del repuesto bloqueada (SELECT FOR UPDATE),
// de modo que operaciones concurrentes sobre el mismo repuesto no puedan violar
// el invariante de cantidad no negativa. Operaciones sobre repuestos distintos
// no se bloquean entre sí.
type StockUseCase struct {
	txRunner     TxRunner
	stockInRepo  repository.StockInRepository
	stockOutRepo repository.StockOutRepository
}

// NewStockUseCase construye el caso de uso. stockInRepo/stockOutRepo van atados
// al pool y solo se usan para lecturas (listados); toda mutación pasa por txRunner.
func NewStockUseCase(
	txRunner TxRunner,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		stockInRepo:  stockInRepo,
		stockOutRepo: stockOutRepo,
	}
}

// CreateStockIn registra una entrada: suma Quantity al repuesto. Sin tope superior.
func (uc *StockUseCase) CreateStockIn(ctx context.Context, createdBy string, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	if in.PartName == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	mv := &entity.StockInMovement{
		ID:        uuid.New().String(),
		PartName:  in.PartName,
		Quantity:  in.Quantity,
		Date:      date,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	}
	err = uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		stockInRepo repository.StockInRepository,
		_ repository.StockOutRepository,
	) error {
		part, err := partRepo.GetByNameForUpdate(in.PartName)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		if err := stockInRepo.Create(mv); err != nil {
			return err
		}
		return partRepo.UpdateQuantity(part.Name, part.Quantity+in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return toStockInResponse(mv), nil
}

// CreateStockOut registra una salida: exige stock disponible suficiente y captura
// el precio unitario como snapshot histórico. Falla con InsufficientStockError
// (indicando lo disponible) si la salida excede la cantidad actual.
func (uc *StockUseCase) CreateStockOut(ctx context.Context, createdBy string, in dto.CreateStockOutRequest) (*dto.StockOutResponse, error) {
	if in.PartName == "" || in.Quantity <= 0 || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	mv := &entity.StockOutMovement{
		ID:        uuid.New().String(),
		PartName:  in.PartName,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Date:      date,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	}
	err = uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		part, err := partRepo.GetByNameForUpdate(in.PartName)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		if part.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				PartName:  part.Name,
				Available: part.Quantity,
				Requested: in.Quantity,
			}
		}
		if err := stockOutRepo.Create(mv); err != nil {
			return err
		}
		return partRepo.UpdateQuantity(part.Name, part.Quantity-in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return toStockOutResponse(mv), nil
}

// UpdateStockIn reescribe cantidad y fecha de una entrada existente y re-deriva
// la cantidad del repuesto: candidate = actual + (nueva − vieja). Si el candidato
// queda negativo, aborta con ErrInvalidOperation sin mutar nada.
func (uc *StockUseCase) UpdateStockIn(ctx context.Context, id string, in dto.UpdateStockInRequest) error {
	if id == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		stockInRepo repository.StockInRepository,
		_ repository.StockOutRepository,
	) error {
		mv, err := stockInRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		part, err := partRepo.GetByNameForUpdate(mv.PartName)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		// La primera lectura solo descubre el repuesto; puede ser obsoleta si
		// otra tx editó el movimiento mientras esperábamos el lock. El delta
		// se calcula con la relectura bajo la fila bloqueada.
		mv, err = stockInRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		candidate := part.Quantity + (in.Quantity - mv.Quantity)
		if candidate < 0 {
			return domain.ErrInvalidOperation
		}
		mv.Quantity = in.Quantity
		mv.Date = date
		if err := stockInRepo.Update(mv); err != nil {
			return err
		}
		return partRepo.UpdateQuantity(part.Name, candidate)
	})
}

// UpdateStockOut simétrico a UpdateStockIn pero con delta invertido: aumentar la
// salida reduce el disponible, así que candidate = actual + (vieja − nueva).
// El precio unitario se sobreescribe sin condiciones (reemplaza el snapshot).
func (uc *StockUseCase) UpdateStockOut(ctx context.Context, id string, in dto.UpdateStockOutRequest) error {
	if id == "" || in.Quantity <= 0 || in.UnitPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		mv, err := stockOutRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		part, err := partRepo.GetByNameForUpdate(mv.PartName)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		// Relectura bajo la fila bloqueada; la primera solo descubre el repuesto.
		mv, err = stockOutRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		candidate := part.Quantity + (mv.Quantity - in.Quantity)
		if candidate < 0 {
			return domain.ErrInvalidOperation
		}
		mv.Quantity = in.Quantity
		mv.UnitPrice = in.UnitPrice
		mv.Date = date
		if err := stockOutRepo.Update(mv); err != nil {
			return err
		}
		return partRepo.UpdateQuantity(part.Name, candidate)
	})
}

// DeleteStockIn elimina una entrada revirtiendo su efecto. Se rechaza con
// ErrInvalidOperation si quitar esa entrada dejaría la cantidad en negativo.
func (uc *StockUseCase) DeleteStockIn(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		stockInRepo repository.StockInRepository,
		_ repository.StockOutRepository,
	) error {
		mv, err := stockInRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		part, err := partRepo.GetByNameForUpdate(mv.PartName)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		// Relectura bajo la fila bloqueada; la primera solo descubre el repuesto.
		mv, err = stockInRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		candidate := part.Quantity - mv.Quantity
		if candidate < 0 {
			return domain.ErrInvalidOperation
		}
		if err := stockInRepo.Delete(id); err != nil {
			return err
		}
		return partRepo.UpdateQuantity(part.Name, candidate)
	})
}

// DeleteStockOut elimina una salida devolviendo el stock al repuesto.
// Siempre es legal: borrar una venta retorna la cantidad vendida.
func (uc *StockUseCase) DeleteStockOut(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		mv, err := stockOutRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		part, err := partRepo.GetByNameForUpdate(mv.PartName)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		// Relectura bajo la fila bloqueada; la primera solo descubre el repuesto.
		mv, err = stockOutRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		if err := stockOutRepo.Delete(id); err != nil {
			return err
		}
		return partRepo.UpdateQuantity(part.Name, part.Quantity+mv.Quantity)
	})
}

// ListStockIn pagina las entradas del libro (fecha desc, creación desc).
func (uc *StockUseCase) ListStockIn(_ context.Context, q dto.MovementListQuery) (*dto.StockInListResponse, error) {
	filter, err := toMovementFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.stockInRepo.List(filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockInListResponse{
		Movements: make([]dto.StockInResponse, 0, len(list)),
		Page:      dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, mv := range list {
		resp.Movements = append(resp.Movements, *toStockInResponse(mv))
	}
	return resp, nil
}

// ListStockOut pagina las salidas del libro (fecha desc, creación desc).
func (uc *StockUseCase) ListStockOut(_ context.Context, q dto.MovementListQuery) (*dto.StockOutListResponse, error) {
	filter, err := toMovementFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.stockOutRepo.List(filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockOutListResponse{
		Movements: make([]dto.StockOutResponse, 0, len(list)),
		Page:      dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, mv := range list {
		resp.Movements = append(resp.Movements, *toStockOutResponse(mv))
	}
	return resp, nil
}

func toMovementFilter(q dto.MovementListQuery) (repository.MovementFilter, error) {
	q.DefaultPage()
	filter := repository.MovementFilter{
		PartName: q.Part,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.Date != "" {
		date, err := time.Parse(dto.DateLayout, q.Date)
		if err != nil {
			return repository.MovementFilter{}, domain.ErrInvalidInput
		}
		filter.Date = &date
	}
	return filter, nil
}

func toStockInResponse(mv *entity.StockInMovement) *dto.StockInResponse {
	return &dto.StockInResponse{
		ID:        mv.ID,
		PartName:  mv.PartName,
		Quantity:  mv.Quantity,
		Date:      mv.Date.Format(dto.DateLayout),
		CreatedAt: mv.CreatedAt,
	}
}

func toStockOutResponse(mv *entity.StockOutMovement) *dto.StockOutResponse {
	return &dto.StockOutResponse{
		ID:         mv.ID,
		PartName:   mv.PartName,
		Quantity:   mv.Quantity,
		UnitPrice:  mv.UnitPrice.Round(2),
		TotalPrice: mv.Total().Round(2),
		Date:       mv.Date.Format(dto.DateLayout),
		CreatedAt:  mv.CreatedAt,
	}
}

package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// PartUseCase casos de uso CRUD del catálogo de repuestos. La cantidad aquí es
// el ajuste inicial implícito (como una entrada cero-ésima); las mutaciones por
// movimientos son exclusivas del motor de reconciliación.
type PartUseCase struct {
	repo     repository.PartRepository
	txRunner TxRunner
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository, txRunner TxRunner) *PartUseCase {
	return &PartUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un repuesto nuevo. Falla con ErrDuplicate si el nombre ya existe
// (el nombre es clave primaria, sensible a mayúsculas).
func (uc *PartUseCase) Create(_ context.Context, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.Name == "" || in.Quantity < 0 || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		Name:      in.Name,
		Category:  in.Category,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// Get obtiene un repuesto por nombre.
func (uc *PartUseCase) Get(_ context.Context, name string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return toPartResponse(part), nil
}

// Update actualización parcial de categoría, cantidad y precio. Rechaza valores
// negativos. Fijar la cantidad directamente redefine el ajuste inicial del
// repuesto; no toca el libro de movimientos. Corre con la fila bloqueada: un
// read-modify-write sin lock podría pisar una cantidad recién escrita por el
// motor de reconciliación.
func (uc *PartUseCase) Update(ctx context.Context, name string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var part *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.StockInRepository,
		_ repository.StockOutRepository,
	) error {
		p, err := partRepo.GetByNameForUpdate(name)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			p.UnitPrice = *in.UnitPrice
		}
		p.UpdatedAt = time.Now()
		if err := partRepo.Update(p); err != nil {
			return err
		}
		part = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// Delete elimina el repuesto y, en cascada, todos sus movimientos, dentro de
// una sola transacción. Destruye la historia de movimientos de forma
// irreversible; la capa de presentación debe advertirlo antes de llamar.
func (uc *PartUseCase) Delete(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		part, err := partRepo.GetByNameForUpdate(name)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		if err := stockInRepo.DeleteByPart(name); err != nil {
			return err
		}
		if err := stockOutRepo.DeleteByPart(name); err != nil {
			return err
		}
		return partRepo.Delete(name)
	})
}

// List lista todos los repuestos ordenados por nombre.
func (uc *PartUseCase) List(_ context.Context) (*dto.PartListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	resp := &dto.PartListResponse{
		Parts: make([]dto.PartResponse, 0, len(list)),
		Total: len(list),
	}
	for _, p := range list {
		resp.Parts = append(resp.Parts, *toPartResponse(p))
	}
	return resp, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		Name:       p.Name,
		Category:   p.Category,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice.Round(2),
		TotalValue: p.TotalValue().Round(2),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

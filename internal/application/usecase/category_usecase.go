package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías del catálogo. Las categorías definen los
// defaults de margen e IVA para ítems legados.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create da de alta una categoría validando nombre y defaults.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: nombre de categoría vacío", domain.ErrInvalidInput)
	}
	if in.DefaultMarginPct.IsNegative() {
		return nil, fmt.Errorf("%w: margen por defecto negativo", domain.ErrInvalidInput)
	}
	if !entity.IsAllowedTaxRate(in.DefaultTaxPct) {
		return nil, fmt.Errorf("%w: tipo de IVA %s no admitido", domain.ErrInvalidInput, in.DefaultTaxPct)
	}

	cat := &entity.Category{
		ID:               uuid.NewString(),
		Name:             in.Name,
		DefaultMarginPct: in.DefaultMarginPct,
		DefaultTaxPct:    in.DefaultTaxPct,
		SortOrder:        in.SortOrder,
	}
	if err := uc.categoryRepo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// GetByID recupera una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List devuelve todas las categorías ordenadas por SortOrder.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *toCategoryResponse(&cats[i]))
	}
	return out, nil
}

// Update modifica nombre y defaults de una categoría existente.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		cat.Name = in.Name
	}
	if in.DefaultMarginPct.IsNegative() {
		return nil, fmt.Errorf("%w: margen por defecto negativo", domain.ErrInvalidInput)
	}
	if !entity.IsAllowedTaxRate(in.DefaultTaxPct) {
		return nil, fmt.Errorf("%w: tipo de IVA %s no admitido", domain.ErrInvalidInput, in.DefaultTaxPct)
	}
	cat.DefaultMarginPct = in.DefaultMarginPct
	cat.DefaultTaxPct = in.DefaultTaxPct
	cat.SortOrder = in.SortOrder

	if err := uc.categoryRepo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Delete elimina la categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.categoryRepo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		DefaultMarginPct: c.DefaultMarginPct,
		DefaultTaxPct:    c.DefaultTaxPct,
		SortOrder:        c.SortOrder,
	}
}

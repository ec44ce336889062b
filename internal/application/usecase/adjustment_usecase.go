package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

// AdjustmentUseCase registro de ajustes de inventario. Los ajustes son
// inmutables: solo alta y consulta vía informes.
type AdjustmentUseCase struct {
	adjRepo repository.AdjustmentRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(adjRepo repository.AdjustmentRepository) *AdjustmentUseCase {
	return &AdjustmentUseCase{adjRepo: adjRepo}
}

// Create valida y persiste el ajuste.
func (uc *AdjustmentUseCase) Create(ctx context.Context, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if in.Type != entity.AdjustmentIncrease && in.Type != entity.AdjustmentDecrease {
		return nil, fmt.Errorf("%w: tipo de ajuste %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva (el signo lo da el tipo)", domain.ErrInvalidInput)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	adj := &entity.InventoryAdjustment{
		ID:          uuid.NewString(),
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Date:        date,
	}
	if err := uc.adjRepo.Create(ctx, adj); err != nil {
		return nil, err
	}
	return &dto.AdjustmentResponse{
		ID:          adj.ID,
		ProductID:   adj.ProductID,
		ProductName: adj.ProductName,
		Type:        adj.Type,
		Quantity:    adj.Quantity,
		Reason:      adj.Reason,
		Date:        adj.Date,
	}, nil
}

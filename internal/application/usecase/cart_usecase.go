package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/cart"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

// CartUseCase gestiona las sesiones de carrito del terminal. Los ítems
// legados (sin costo/margen/IVA propios) se completan con los defaults de su
// categoría, etiquetados como tales.
type CartUseCase struct {
	carts        *cart.Registry
	categoryRepo repository.CategoryRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(carts *cart.Registry, categoryRepo repository.CategoryRepository) *CartUseCase {
	return &CartUseCase{carts: carts, categoryRepo: categoryRepo}
}

// OpenSession abre una sesión de venta con carrito vacío.
func (uc *CartUseCase) OpenSession() string {
	return uc.carts.Open()
}

// CloseSession descarta la sesión.
func (uc *CartUseCase) CloseSession(sessionID string) error {
	return uc.carts.Close(sessionID)
}

// AddItem incorpora (o fusiona) una línea en el carrito de la sesión. Si al
// ítem le falta algún campo de precio, los tres se resuelven desde los
// defaults de la categoría y la línea queda etiquetada con origen "category";
// un ítem sin categoría conocida se rechaza en lugar de defaultear a ciegas.
func (uc *CartUseCase) AddItem(ctx context.Context, sessionID string, req dto.AddItemRequest) (*dto.CartDTO, error) {
	c, err := uc.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}

	item := entity.LineItem{
		Barcode:       req.Barcode,
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		PricingSource: entity.PricingExplicit,
	}

	if req.UnitCost == nil || req.MarginPct == nil || req.TaxPct == nil {
		cat, err := uc.categoryRepo.GetByName(ctx, req.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: ítem legado sin categoría resoluble %q",
				domain.ErrInvalidInput, req.Category)
		}
		if req.UnitCost == nil {
			return nil, fmt.Errorf("%w: el ítem legado necesita al menos su costo", domain.ErrInvalidInput)
		}
		item.UnitCost = *req.UnitCost
		item.MarginPct = cat.DefaultMarginPct
		item.TaxPct = cat.DefaultTaxPct
		if req.MarginPct != nil {
			item.MarginPct = *req.MarginPct
		}
		if req.TaxPct != nil {
			item.TaxPct = *req.TaxPct
		}
		item.PricingSource = entity.PricingCategoryDefault
	} else {
		item.UnitCost = *req.UnitCost
		item.MarginPct = *req.MarginPct
		item.TaxPct = *req.TaxPct
	}

	if err := c.AddItem(item); err != nil {
		return nil, err
	}
	return uc.snapshot(sessionID, c), nil
}

// RemoveItem quita una línea.
func (uc *CartUseCase) RemoveItem(sessionID, barcode string) (*dto.CartDTO, error) {
	c, err := uc.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(barcode); err != nil {
		return nil, err
	}
	return uc.snapshot(sessionID, c), nil
}

// SetQuantity fija la cantidad de una línea. Un valor fuera de rango se
// rechaza y el carrito queda como estaba.
func (uc *CartUseCase) SetQuantity(sessionID, barcode string, quantity int) (*dto.CartDTO, error) {
	c, err := uc.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.SetQuantity(barcode, quantity); err != nil {
		return nil, err
	}
	return uc.snapshot(sessionID, c), nil
}

// SetPrice aplica un override manual de precio a una línea.
func (uc *CartUseCase) SetPrice(sessionID, barcode, raw string) (*dto.CartDTO, error) {
	c, err := uc.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.SetPrice(barcode, raw); err != nil {
		return nil, err
	}
	return uc.snapshot(sessionID, c), nil
}

// Clear vacía el carrito de la sesión.
func (uc *CartUseCase) Clear(sessionID string) (*dto.CartDTO, error) {
	c, err := uc.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return uc.snapshot(sessionID, c), nil
}

// Get devuelve el estado actual del carrito.
func (uc *CartUseCase) Get(sessionID string) (*dto.CartDTO, error) {
	c, err := uc.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return uc.snapshot(sessionID, c), nil
}

func (uc *CartUseCase) snapshot(sessionID string, c *cart.Cart) *dto.CartDTO {
	items := c.Items()
	out := &dto.CartDTO{
		SessionID:    sessionID,
		Items:        make([]dto.CartLineDTO, 0, len(items)),
		Total:        c.Total(),
		TaxBreakdown: dto.ToTaxBucketDTOs(c.TaxBreakdown()),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.ToCartLineDTO(it))
	}
	return out
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/pricing"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
	"github.com/jhoicas/Tpv-api/pkg/logger"
)

// CheckoutUseCase cierra una venta: valida las líneas, recalcula el desglose
// de IVA en servidor, audita los precios enviados por el terminal y persiste
// el pedido.
type CheckoutUseCase struct {
	orderRepo repository.OrderRepository
	log       *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(orderRepo repository.OrderRepository, log *logger.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orderRepo: orderRepo, log: log}
}

// Checkout valida y persiste la venta. El desglose de IVA y el total se
// recalculan siempre en servidor; el precio unitario enviado por el terminal
// solo se contrasta con la re-derivación local y, si diverge, se registra una
// advertencia con los inputs y ambos valores sin bloquear la transacción.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	if !entity.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, req.PaymentMethod)
	}
	if req.InvoiceType != entity.InvoiceSimple && req.InvoiceType != entity.InvoiceFull {
		return nil, fmt.Errorf("%w: tipo de factura %q", domain.ErrInvalidInput, req.InvoiceType)
	}
	if req.InvoiceType == entity.InvoiceFull && (req.CustomerName == "" || req.CustomerTaxID == "") {
		return nil, fmt.Errorf("%w: la factura completa exige nombre y NIF del cliente", domain.ErrInvalidInput)
	}
	if req.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento %s negativo", domain.ErrInvalidInput, req.DiscountAmount)
	}

	items := make([]entity.LineItem, 0, len(req.Items))
	grossTotal := decimal.Zero

	for i, in := range req.Items {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: línea %d: cantidad %d", domain.ErrInvalidInput, i, in.Quantity)
		}
		if !in.UnitCost.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: costo %s no positivo", domain.ErrInvalidInput, i, in.UnitCost)
		}
		if in.MarginPct.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: margen %s negativo", domain.ErrInvalidInput, i, in.MarginPct)
		}
		if !entity.IsAllowedTaxRate(in.TaxPct) {
			return nil, fmt.Errorf("%w: línea %d: tipo de IVA %s no admitido", domain.ErrInvalidInput, i, in.TaxPct)
		}

		// Auditoría de consistencia: detección, nunca bloqueo.
		if !in.UnitPrice.IsZero() && !pricing.Verify(in.UnitCost, in.TaxPct, in.MarginPct, in.UnitPrice) {
			local := pricing.Compute(in.UnitCost, in.TaxPct, in.MarginPct).SalePrice
			uc.log.Warn().
				Str("barcode", in.Barcode).
				Str("costo", in.UnitCost.String()).
				Str("margen", in.MarginPct.String()).
				Str("iva", in.TaxPct.String()).
				Str("precio_terminal", in.UnitPrice.String()).
				Str("precio_servidor", local.String()).
				Msg("divergencia de precio entre terminal y servidor")
		}

		price := in.UnitPrice
		if price.IsZero() {
			price = pricing.Compute(in.UnitCost, in.TaxPct, in.MarginPct).SalePrice
		}

		item := entity.LineItem{
			Barcode:       in.Barcode,
			Name:          in.Name,
			Category:      in.Category,
			Quantity:      in.Quantity,
			UnitCost:      in.UnitCost,
			MarginPct:     in.MarginPct,
			TaxPct:        in.TaxPct,
			UnitPrice:     price,
			PricingSource: entity.PricingExplicit,
		}
		item.RecalcTotal()
		items = append(items, item)
		grossTotal = grossTotal.Add(item.LineTotal)
	}

	if req.DiscountAmount.GreaterThan(grossTotal) {
		return nil, fmt.Errorf("%w: descuento %s supera el total %s",
			domain.ErrInvalidInput, req.DiscountAmount, grossTotal)
	}

	buckets := pricing.BreakdownByRate(items)
	breakdown := make([]entity.TaxLine, 0, len(buckets))
	for _, b := range buckets {
		breakdown = append(breakdown, entity.TaxLine{Rate: b.Rate, Base: b.Base, Tax: b.Tax})
	}

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.NewString(),
		Items:          items,
		TotalAmount:    grossTotal.Sub(req.DiscountAmount),
		DiscountAmount: req.DiscountAmount,
		PaymentMethod:  req.PaymentMethod,
		TaxBreakdown:   breakdown,
		InvoiceType:    req.InvoiceType,
		CustomerName:   req.CustomerName,
		CustomerTaxID:  req.CustomerTaxID,
		Date:           now,
		CreatedAt:      now,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("checkout: persistir pedido: %w", err)
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("total", order.TotalAmount.String()).
		Str("pago", order.PaymentMethod).
		Int("lineas", len(order.Items)).
		Msg("venta cerrada")

	return &dto.CheckoutResponse{
		OrderID:      order.ID,
		TotalAmount:  order.TotalAmount,
		TaxBreakdown: dto.ToTaxBucketDTOs(buckets),
		Date:         order.Date,
	}, nil
}

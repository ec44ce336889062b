package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

type capturingOrderRepo struct {
	fakeOrderRepo
	created *entity.Order
}

func (c *capturingOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	c.created = order
	return nil
}

func lineaCheckout(barcode string, qty int, cost string, margin, tax int64, price string) dto.CheckoutItemRequest {
	return dto.CheckoutItemRequest{
		Barcode:   barcode,
		Name:      "Producto " + barcode,
		Category:  "General",
		Quantity:  qty,
		UnitCost:  decimal.RequireFromString(cost),
		MarginPct: decimal.NewFromInt(margin),
		TaxPct:    decimal.NewFromInt(tax),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCheckout_PersisteConDesgloseRecalculado(t *testing.T) {
	repo := &capturingOrderRepo{}
	uc := usecase.NewCheckoutUseCase(repo, testLogger())

	resp, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			lineaCheckout("A", 2, "10.00", 30, 21, "15.73"),
			lineaCheckout("B", 1, "0.80", 25, 4, "1.04"),
		},
		PaymentMethod:  entity.PaymentCard,
		DiscountAmount: decimal.RequireFromString("2.00"),
		InvoiceType:    entity.InvoiceSimple,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created, "el pedido debe persistirse")

	// Total bruto 31.46 + 1.04 = 32.50; neto tras descuento 30.50.
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("30.50")),
		"total esperado 30.50, obtenido %s", resp.TotalAmount)
	require.Len(t, resp.TaxBreakdown, 2)
	assert.True(t, resp.TaxBreakdown[0].Rate.Equal(decimal.NewFromInt(4)), "buckets ascendentes por tipo")
	assert.True(t, resp.TaxBreakdown[1].Rate.Equal(decimal.NewFromInt(21)))

	assert.Len(t, repo.created.TaxBreakdown, 2)
	assert.Equal(t, entity.PaymentCard, repo.created.PaymentMethod)
	assert.True(t, repo.created.DiscountAmount.Equal(decimal.RequireFromString("2.00")))
}

func TestCheckout_DivergenciaDePrecioNoBloquea(t *testing.T) {
	repo := &capturingOrderRepo{}
	uc := usecase.NewCheckoutUseCase(repo, testLogger())

	// El terminal manda 15.99 pero la fórmula local da 15.73 (diff > 0.005):
	// se registra la advertencia y la venta sigue adelante con el precio del
	// terminal.
	resp, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			lineaCheckout("A", 1, "10.00", 30, 21, "15.99"),
		},
		PaymentMethod: entity.PaymentCash,
		InvoiceType:   entity.InvoiceSimple,
	})
	require.NoError(t, err, "la divergencia es auditoría, nunca una puerta de validación")
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("15.99")))
}

func TestCheckout_ValidacionesDeEntrada(t *testing.T) {
	uc := usecase.NewCheckoutUseCase(&capturingOrderRepo{}, testLogger())
	ctx := context.Background()
	base := dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{lineaCheckout("A", 1, "10.00", 30, 21, "15.73")},
		PaymentMethod: entity.PaymentCash,
		InvoiceType:   entity.InvoiceSimple,
	}

	sinLineas := base
	sinLineas.Items = nil
	_, err := uc.Checkout(ctx, sinLineas)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	pagoRaro := base
	pagoRaro.PaymentMethod = "trueque"
	_, err = uc.Checkout(ctx, pagoRaro)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cantidadCero := base
	cantidadCero.Items = []dto.CheckoutItemRequest{lineaCheckout("A", 0, "10.00", 30, 21, "15.73")}
	_, err = uc.Checkout(ctx, cantidadCero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	costoCero := base
	costoCero.Items = []dto.CheckoutItemRequest{lineaCheckout("A", 1, "0.00", 30, 21, "0.00")}
	_, err = uc.Checkout(ctx, costoCero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ivaRaro := base
	ivaRaro.Items = []dto.CheckoutItemRequest{lineaCheckout("A", 1, "10.00", 30, 16, "15.08")}
	_, err = uc.Checkout(ctx, ivaRaro)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	descuentoExcesivo := base
	descuentoExcesivo.DiscountAmount = decimal.RequireFromString("100.00")
	_, err = uc.Checkout(ctx, descuentoExcesivo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_FacturaCompletaExigeIdentidad(t *testing.T) {
	uc := usecase.NewCheckoutUseCase(&capturingOrderRepo{}, testLogger())
	ctx := context.Background()

	req := dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{lineaCheckout("A", 1, "10.00", 30, 21, "15.73")},
		PaymentMethod: entity.PaymentCash,
		InvoiceType:   entity.InvoiceFull,
	}
	_, err := uc.Checkout(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin identidad del cliente debe rechazarse")

	req.CustomerName = "María García"
	req.CustomerTaxID = "12345678Z"
	resp, err := uc.Checkout(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)
}

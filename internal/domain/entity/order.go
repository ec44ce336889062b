package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago admitidos por el TPV.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// IsValidPaymentMethod valida el enum de método de pago.
func IsValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentTransfer
}

// Tipos de factura emitida al cierre de la venta.
const (
	InvoiceSimple = "simple" // ticket simplificado
	InvoiceFull   = "full"   // factura completa: requiere identidad del cliente
)

// TaxLine acumulado de base y cuota de IVA de un ticket para un tipo concreto.
// Los tipos del desglose particionan exactamente los presentes en las líneas.
type TaxLine struct {
	Rate decimal.Decimal
	Base decimal.Decimal
	Tax  decimal.Decimal
}

// Order ticket de venta cerrado (histórico).
//
// Invariantes:
//   - TotalAmount + DiscountAmount = Σ LineTotal de sus líneas.
//   - DiscountAmount ≥ 0 y ≤ Σ LineTotal.
//   - El orden de Items solo es significativo para mostrar.
type Order struct {
	ID             string
	Items          []LineItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  string // cash | card | transfer
	TaxBreakdown   []TaxLine
	InvoiceType    string // simple | full
	CustomerName   string // solo factura completa
	CustomerTaxID  string // NIF/CIF, solo factura completa
	Date           time.Time
	Archived       bool
	CreatedAt      time.Time
}

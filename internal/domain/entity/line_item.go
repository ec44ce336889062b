package entity

import "github.com/shopspring/decimal"

// Origen de los campos de precio de una línea. Los ítems legados (sin
// costo/margen/IVA propios) toman los defaults de su categoría de forma
// explícita y etiquetada; nunca se aplica un default silencioso.
const (
	PricingExplicit        = "explicit"
	PricingCategoryDefault = "category"
)

// Tipos de IVA admitidos (España).
var AllowedTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(4),
	decimal.NewFromInt(10),
	decimal.NewFromInt(21),
}

// IsAllowedTaxRate indica si el tipo pertenece al conjunto fijo admitido.
func IsAllowedTaxRate(rate decimal.Decimal) bool {
	for _, r := range AllowedTaxRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// LineItem línea de venta dentro de un ticket. El código de barras es único
// dentro de la transacción. UnitPrice es derivado: siempre re-derivable desde
// (UnitCost, MarginPct, TaxPct) vía la fórmula de precios, salvo override
// manual explícito de caja.
type LineItem struct {
	Barcode       string
	Name          string
	Category      string
	Quantity      int
	UnitCost      decimal.Decimal // base de costo por unidad, 2 decimales
	MarginPct     decimal.Decimal // % margen sobre costo
	TaxPct        decimal.Decimal // % IVA: 0, 4, 10 o 21
	UnitPrice     decimal.Decimal // precio de venta por unidad (derivado)
	LineTotal     decimal.Decimal // UnitPrice × Quantity
	PricingSource string          // PricingExplicit | PricingCategoryDefault
}

// RecalcTotal recalcula LineTotal; debe llamarse tras cambiar precio o cantidad.
func (li *LineItem) RecalcTotal() {
	li.LineTotal = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

package entity

import "github.com/shopspring/decimal"

// Category categoría de productos del catálogo. Entrada de solo lectura para
// la selección de defaults de precio (el catálogo es propiedad de un
// colaborador externo, no del core).
type Category struct {
	ID               string
	Name             string
	DefaultMarginPct decimal.Decimal // margen aplicado a ítems legados de la categoría
	DefaultTaxPct    decimal.Decimal // IVA por defecto de la categoría
	SortOrder        int
}

package dto

import "github.com/shopspring/decimal"

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name             string          `json:"name"`
	DefaultMarginPct decimal.Decimal `json:"default_margin_pct"`
	DefaultTaxPct    decimal.Decimal `json:"default_tax_pct"`
	SortOrder        int             `json:"sort_order"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	DefaultMarginPct decimal.Decimal `json:"default_margin_pct"`
	DefaultTaxPct    decimal.Decimal `json:"default_tax_pct"`
	SortOrder        int             `json:"sort_order"`
}

package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/pricing"
)

// AddItemRequest alta o fusión de una línea en el carrito. Los campos de
// precio son punteros: un ítem legado llega sin costo/margen/IVA y el caso de
// uso los resuelve desde los defaults de su categoría, etiquetando la línea
// como "category" en lugar de defaultear en silencio.
type AddItemRequest struct {
	Barcode   string           `json:"barcode"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	MarginPct *decimal.Decimal `json:"margin_pct,omitempty"`
	TaxPct    *decimal.Decimal `json:"tax_pct,omitempty"`
}

// SetQuantityRequest cambio de cantidad de una línea.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetPriceRequest override manual del precio de una línea. El precio viaja
// como string para que el parseo (y su rechazo) ocurra en el dominio.
type SetPriceRequest struct {
	Price string `json:"price"`
}

// CartLineDTO línea del carrito en respuestas.
type CartLineDTO struct {
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
	TaxPct        decimal.Decimal `json:"tax_pct"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	PricingSource string          `json:"pricing_source"`
}

// TaxBucketDTO bucket del desglose de IVA.
type TaxBucketDTO struct {
	Rate    decimal.Decimal `json:"rate"`
	Base    decimal.Decimal `json:"base"`
	Tax     decimal.Decimal `json:"tax"`
	Taxable decimal.Decimal `json:"taxable"`
}

// CartDTO estado completo del carrito de una sesión.
type CartDTO struct {
	SessionID    string          `json:"session_id"`
	Items        []CartLineDTO   `json:"items"`
	Total        decimal.Decimal `json:"total"`
	TaxBreakdown []TaxBucketDTO  `json:"tax_breakdown"`
}

// ToCartLineDTO convierte una línea de dominio.
func ToCartLineDTO(it entity.LineItem) CartLineDTO {
	return CartLineDTO{
		Barcode:       it.Barcode,
		Name:          it.Name,
		Category:      it.Category,
		Quantity:      it.Quantity,
		UnitCost:      it.UnitCost,
		MarginPct:     it.MarginPct,
		TaxPct:        it.TaxPct,
		UnitPrice:     it.UnitPrice,
		LineTotal:     it.LineTotal,
		PricingSource: it.PricingSource,
	}
}

// ToTaxBucketDTOs convierte el desglose de IVA de dominio.
func ToTaxBucketDTOs(buckets []pricing.TaxBucket) []TaxBucketDTO {
	out := make([]TaxBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TaxBucketDTO{Rate: b.Rate, Base: b.Base, Tax: b.Tax, Taxable: b.Taxable})
	}
	return out
}

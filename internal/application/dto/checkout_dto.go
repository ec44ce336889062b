package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest línea enviada al cierre de la venta, con los campos de
// precio ya derivados por el terminal. El servidor re-deriva el precio con la
// misma fórmula y registra una advertencia si ambos divergen (auditoría, no
// bloqueo).
type CheckoutItemRequest struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	MarginPct decimal.Decimal `json:"margin_pct"`
	TaxPct    decimal.Decimal `json:"tax_pct"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CheckoutRequest cierre de venta completo.
type CheckoutRequest struct {
	Items          []CheckoutItemRequest `json:"items"`
	PaymentMethod  string                `json:"payment_method"` // cash | card | transfer
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	InvoiceType    string                `json:"invoice_type"` // simple | full
	CustomerName   string                `json:"customer_name,omitempty"`
	CustomerTaxID  string                `json:"customer_tax_id,omitempty"`
}

// CheckoutResponse resultado del cierre: identificador del pedido persistido
// y los importes finales calculados en servidor.
type CheckoutResponse struct {
	OrderID      string          `json:"order_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TaxBreakdown []TaxBucketDTO  `json:"tax_breakdown"`
	Date         time.Time       `json:"date"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportRequest parámetros del informe de ventas. Los extremos custom
// viajan como enteros en nanosegundos para no perder precisión en el
// transporte (un float64 pierde enteros por encima de 2^53).
type SalesReportRequest struct {
	Period             string `query:"period"` // last7d|last30d|last3m|last6m|last1y|custom
	FromNs             int64  `query:"from_ns"`
	ToNs               int64  `query:"to_ns"`
	Category           string `query:"category"`
	PaymentMethod      string `query:"payment_method"`
	IncludeArchived    bool   `query:"include_archived"`
	IncludeAdjustments bool   `query:"include_adjustments"`
}

// PeriodDTO rango resuelto del informe.
type PeriodDTO struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ProductStatsDTO acumulado por producto.
type ProductStatsDTO struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Profit    decimal.Decimal `json:"profit"`
	Revenue   decimal.Decimal `json:"revenue"`
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// ChartPointDTO punto de la serie del gráfico de beneficios.
type ChartPointDTO struct {
	Label  string          `json:"label"`
	Profit decimal.Decimal `json:"profit"`
}

// MarginBandDTO banda del histograma de márgenes.
type MarginBandDTO struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

// AdjustmentImpactDTO impacto agregado de ajustes de un producto.
type AdjustmentImpactDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	DecreaseCount int             `json:"decrease_count"`
	IncreaseCount int             `json:"increase_count"`
	NetQuantity   int             `json:"net_quantity"`
	EstimatedLoss decimal.Decimal `json:"estimated_loss"`
	LatestDate    time.Time       `json:"latest_date"`
}

// SalesReportDTO informe completo. HasData distingue "sin datos en el rango"
// de "aún no solicitado": un informe vacío es un resultado válido, no un
// error.
type SalesReportDTO struct {
	Period           PeriodDTO                  `json:"period"`
	HasData          bool                       `json:"has_data"`
	OrderCount       int                        `json:"order_count"`
	ActiveCount      int                        `json:"active_count"`
	ArchivedCount    int                        `json:"archived_count"`
	TotalRevenue     decimal.Decimal            `json:"total_revenue"`
	TotalProfit      decimal.Decimal            `json:"total_profit"`
	TotalCostBasis   decimal.Decimal            `json:"total_cost_basis"`
	TotalDiscount    decimal.Decimal            `json:"total_discount"`
	TotalTax         decimal.Decimal            `json:"total_tax"`
	AverageMarginPct decimal.Decimal            `json:"average_margin_pct"`
	CategoryProfit   map[string]decimal.Decimal `json:"category_profit"`
	PaymentProfit    map[string]decimal.Decimal `json:"payment_profit"`
	TopProducts      []ProductStatsDTO          `json:"top_products"`
	ChartSeries      []ChartPointDTO            `json:"chart_series"`
	MarginHistogram  []MarginBandDTO            `json:"margin_histogram"`
	Adjustments      []AdjustmentImpactDTO      `json:"adjustments,omitempty"`
}

package report

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// MarginBands etiquetas de las bandas del histograma de márgenes, en el mismo
// orden que MarginHistogram.
var MarginBands = [5]string{"0-10%", "10-20%", "20-30%", "30-40%", "40%+"}

// ProductStats acumulado por producto dentro del periodo.
type ProductStats struct {
	Barcode   string
	Name      string
	Category  string
	Quantity  int
	Profit    decimal.Decimal
	Revenue   decimal.Decimal
	MarginPct decimal.Decimal // último margen visto para el código de barras
}

// Summary resultado de la agregación financiera de un conjunto de pedidos.
type Summary struct {
	TotalRevenue     decimal.Decimal
	TotalProfit      decimal.Decimal
	TotalCostBasis   decimal.Decimal
	TotalDiscount    decimal.Decimal
	TotalTax         decimal.Decimal
	AverageMarginPct decimal.Decimal // media ponderada por costo, no media simple
	OrderCount       int
	CategoryProfit   map[string]decimal.Decimal
	PaymentProfit    map[string]decimal.Decimal
	ProductStats     map[string]*ProductStats
	MarginHistogram  [5]int // conteo de líneas por banda de margen
}

var aggHundred = decimal.NewFromInt(100)

// beneficio de una línea: costo × margen / 100 × cantidad.
func lineProfit(it entity.LineItem) decimal.Decimal {
	qty := decimal.NewFromInt(int64(it.Quantity))
	return it.UnitCost.Mul(it.MarginPct).Div(aggHundred).Mul(qty)
}

// índice de banda del histograma para un margen dado.
func marginBand(marginPct decimal.Decimal) int {
	switch {
	case marginPct.LessThan(decimal.NewFromInt(10)):
		return 0
	case marginPct.LessThan(decimal.NewFromInt(20)):
		return 1
	case marginPct.LessThan(decimal.NewFromInt(30)):
		return 2
	case marginPct.LessThan(decimal.NewFromInt(40)):
		return 3
	default:
		return 4
	}
}

// Aggregate recorre los pedidos en una sola pasada (y cada pedido en una sola
// pasada por ítem) acumulando ingresos, beneficio, costo, descuento, IVA y
// los desgloses por categoría, producto, método de pago y banda de margen.
//
// El beneficio por método de pago se recalcula sobre los ítems del propio
// pedido (posiblemente ya filtrados), porque esa agrupación opera a nivel de
// pedido, no de ítem global.
func Aggregate(orders []entity.Order) Summary {
	s := Summary{
		OrderCount:     len(orders),
		CategoryProfit: make(map[string]decimal.Decimal),
		PaymentProfit:  make(map[string]decimal.Decimal),
		ProductStats:   make(map[string]*ProductStats),
	}

	for _, o := range orders {
		s.TotalRevenue = s.TotalRevenue.Add(o.TotalAmount)
		s.TotalDiscount = s.TotalDiscount.Add(o.DiscountAmount)

		orderProfit := decimal.Zero
		for _, it := range o.Items {
			qty := decimal.NewFromInt(int64(it.Quantity))
			cost := it.UnitCost.Mul(qty)
			profit := lineProfit(it)
			base := it.UnitCost.Add(it.UnitCost.Mul(it.MarginPct).Div(aggHundred))
			tax := base.Mul(it.TaxPct).Div(aggHundred).Mul(qty)

			s.TotalCostBasis = s.TotalCostBasis.Add(cost)
			s.TotalProfit = s.TotalProfit.Add(profit)
			s.TotalTax = s.TotalTax.Add(tax)
			orderProfit = orderProfit.Add(profit)

			s.CategoryProfit[it.Category] = s.CategoryProfit[it.Category].Add(profit)
			s.MarginHistogram[marginBand(it.MarginPct)]++

			ps, ok := s.ProductStats[it.Barcode]
			if !ok {
				ps = &ProductStats{Barcode: it.Barcode, Name: it.Name, Category: it.Category}
				s.ProductStats[it.Barcode] = ps
			}
			ps.Quantity += it.Quantity
			ps.Profit = ps.Profit.Add(profit)
			ps.Revenue = ps.Revenue.Add(it.LineTotal)
			ps.MarginPct = it.MarginPct // último visto gana
		}

		s.PaymentProfit[o.PaymentMethod] = s.PaymentProfit[o.PaymentMethod].Add(orderProfit)
	}

	if s.TotalCostBasis.IsPositive() {
		s.AverageMarginPct = s.TotalProfit.Div(s.TotalCostBasis).Mul(aggHundred).Round(2)
	}
	return s
}

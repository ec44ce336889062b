package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/report"
)

func TestAggregate_TotalesBasicos(t *testing.T) {
	// Una línea: costo=10.00, margen=30, IVA=21, qty=2.
	// cost = 20.00; profit = 6.00; tax = 13.00 × 21% × 2 = 5.46.
	pedido := pedidoCon("o1", entity.PaymentCash, "1.50",
		itemDe("A", "Pan", "Panadería", 2, "10.00", 30, 21, "31.46"))

	s := report.Aggregate([]entity.Order{pedido})

	assert.Equal(t, 1, s.OrderCount)
	assert.True(t, s.TotalRevenue.Equal(decimal.RequireFromString("31.46")),
		"ingresos esperados 31.46, obtenidos %s", s.TotalRevenue)
	assert.True(t, s.TotalDiscount.Equal(decimal.RequireFromString("1.50")))
	assert.True(t, s.TotalCostBasis.Equal(decimal.RequireFromString("20.00")),
		"costo esperado 20.00, obtenido %s", s.TotalCostBasis)
	assert.True(t, s.TotalProfit.Equal(decimal.RequireFromString("6.00")),
		"beneficio esperado 6.00, obtenido %s", s.TotalProfit)
	assert.True(t, s.TotalTax.Equal(decimal.RequireFromString("5.46")),
		"IVA esperado 5.46, obtenido %s", s.TotalTax)
}

func TestAggregate_MargenMedioPonderadoPorCosto(t *testing.T) {
	// Línea 1: costo total 10, margen 30 → beneficio 3.
	// Línea 2: costo total 90, margen 10 → beneficio 9.
	// Media ponderada = 12 / 100 × 100 = 12%, no la media simple (20%).
	pedido := pedidoCon("o1", entity.PaymentCard, "0",
		itemDe("A", "Pan", "Panadería", 1, "10.00", 30, 21, "15.73"),
		itemDe("B", "Harina", "Panadería", 9, "10.00", 10, 10, "108.90"))

	s := report.Aggregate([]entity.Order{pedido})
	assert.True(t, s.AverageMarginPct.Equal(decimal.RequireFromString("12")),
		"margen medio esperado 12, obtenido %s", s.AverageMarginPct)
}

func TestAggregate_SinCostoBaseMargenCero(t *testing.T) {
	s := report.Aggregate(nil)
	assert.True(t, s.AverageMarginPct.IsZero())
	assert.Equal(t, 0, s.OrderCount)
}

func TestAggregate_BeneficioPorCategoriaYProducto(t *testing.T) {
	pedidos := []entity.Order{
		pedidoCon("o1", entity.PaymentCash, "0",
			itemDe("A", "Pan", "Panadería", 1, "10.00", 30, 21, "15.73"),
			itemDe("B", "Leche", "Lácteos", 2, "10.00", 25, 4, "26.00")),
		pedidoCon("o2", entity.PaymentCard, "0",
			itemDe("A", "Pan", "Panadería", 3, "10.00", 30, 21, "47.19")),
	}

	s := report.Aggregate(pedidos)

	// Panadería: 3.00 + 9.00 = 12.00; Lácteos: 2.50 × 2 = 5.00.
	assert.True(t, s.CategoryProfit["Panadería"].Equal(decimal.RequireFromString("12.00")),
		"beneficio Panadería esperado 12.00, obtenido %s", s.CategoryProfit["Panadería"])
	assert.True(t, s.CategoryProfit["Lácteos"].Equal(decimal.RequireFromString("5.00")))

	pan := s.ProductStats["A"]
	require.NotNil(t, pan)
	assert.Equal(t, 4, pan.Quantity, "la cantidad del producto suma entre pedidos")
	assert.True(t, pan.Profit.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, pan.Revenue.Equal(decimal.RequireFromString("62.92")),
		"la facturación del producto suma los line totals, obtenida %s", pan.Revenue)
}

func TestAggregate_MargenDeProductoUltimoVistoGana(t *testing.T) {
	pedidos := []entity.Order{
		pedidoCon("o1", entity.PaymentCash, "0",
			itemDe("A", "Pan", "Panadería", 1, "10.00", 30, 21, "15.73")),
		pedidoCon("o2", entity.PaymentCash, "0",
			itemDe("A", "Pan", "Panadería", 1, "10.00", 35, 21, "16.34")),
	}

	s := report.Aggregate(pedidos)
	assert.True(t, s.ProductStats["A"].MarginPct.Equal(decimal.NewFromInt(35)),
		"el margen del producto debe ser el último visto, no una media")
}

func TestAggregate_BeneficioPorMetodoDePago(t *testing.T) {
	pedidos := []entity.Order{
		pedidoCon("o1", entity.PaymentCash, "0",
			itemDe("A", "Pan", "Panadería", 1, "10.00", 30, 21, "15.73")),
		pedidoCon("o2", entity.PaymentCard, "0",
			itemDe("B", "Leche", "Lácteos", 1, "10.00", 25, 4, "13.00")),
		pedidoCon("o3", entity.PaymentCash, "0",
			itemDe("C", "Vino", "Bebidas", 1, "10.00", 40, 21, "16.94")),
	}

	s := report.Aggregate(pedidos)
	assert.True(t, s.PaymentProfit[entity.PaymentCash].Equal(decimal.RequireFromString("7.00")),
		"efectivo: 3.00 + 4.00 = 7.00, obtenido %s", s.PaymentProfit[entity.PaymentCash])
	assert.True(t, s.PaymentProfit[entity.PaymentCard].Equal(decimal.RequireFromString("2.50")))
}

func TestAggregate_HistogramaDeMargenes(t *testing.T) {
	pedido := pedidoCon("o1", entity.PaymentCash, "0",
		itemDe("A", "a", "X", 1, "1.00", 5, 0, "1.05"),   // [0,10)
		itemDe("B", "b", "X", 1, "1.00", 10, 0, "1.10"),  // [10,20) — borde inferior
		itemDe("C", "c", "X", 1, "1.00", 19, 0, "1.19"),  // [10,20)
		itemDe("D", "d", "X", 1, "1.00", 25, 0, "1.25"),  // [20,30)
		itemDe("E", "e", "X", 1, "1.00", 39, 0, "1.39"),  // [30,40)
		itemDe("F", "f", "X", 1, "1.00", 40, 0, "1.40"),  // [40,∞) — borde inferior
		itemDe("G", "g", "X", 1, "1.00", 150, 0, "2.50"), // [40,∞)
	)

	s := report.Aggregate([]entity.Order{pedido})
	assert.Equal(t, [5]int{1, 2, 1, 1, 2}, s.MarginHistogram)
}

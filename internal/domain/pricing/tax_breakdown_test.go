package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/pricing"
)

func linea(barcode string, qty int, cost string, margin, tax int64) entity.LineItem {
	return entity.LineItem{
		Barcode:   barcode,
		Quantity:  qty,
		UnitCost:  decimal.RequireFromString(cost),
		MarginPct: decimal.NewFromInt(margin),
		TaxPct:    decimal.NewFromInt(tax),
	}
}

// TestBreakdownByRate_AgrupaYOrdena: líneas con tres tipos distintos producen
// tres buckets en orden ascendente de tipo, sin importar el orden de entrada.
func TestBreakdownByRate_AgrupaYOrdena(t *testing.T) {
	items := []entity.LineItem{
		linea("A", 1, "10.00", 30, 21),
		linea("B", 2, "5.00", 20, 4),
		linea("C", 1, "2.00", 10, 0),
		linea("D", 3, "1.00", 50, 21),
	}

	buckets := pricing.BreakdownByRate(items)
	require.Len(t, buckets, 3, "deben salir 3 buckets, uno por tipo de IVA")

	assert.True(t, buckets[0].Rate.Equal(decimal.Zero), "el primer bucket debe ser el tipo 0")
	assert.True(t, buckets[1].Rate.Equal(decimal.NewFromInt(4)), "el segundo bucket debe ser el tipo 4")
	assert.True(t, buckets[2].Rate.Equal(decimal.NewFromInt(21)), "el tercer bucket debe ser el tipo 21")
}

// TestBreakdownByRate_ImportesPorCantidad: los importes unitarios se
// multiplican por la cantidad antes de acumularse.
func TestBreakdownByRate_ImportesPorCantidad(t *testing.T) {
	// costo=10.00, margen=30, IVA=21 → base=13.00, cuota=2.73, precio=15.73
	items := []entity.LineItem{linea("A", 3, "10.00", 30, 21)}

	buckets := pricing.BreakdownByRate(items)
	require.Len(t, buckets, 1)

	assert.True(t, buckets[0].Base.Equal(decimal.RequireFromString("39.00")),
		"base esperada 39.00 (13.00 × 3), obtenida %s", buckets[0].Base)
	assert.True(t, buckets[0].Tax.Equal(decimal.RequireFromString("8.19")),
		"cuota esperada 8.19 (2.73 × 3), obtenida %s", buckets[0].Tax)
	assert.True(t, buckets[0].Taxable.Equal(decimal.RequireFromString("47.19")),
		"total esperado 47.19 (15.73 × 3), obtenido %s", buckets[0].Taxable)
}

// TestBreakdownByRate_SumaTotales: la suma de Taxable de todos los buckets
// reproduce la suma de precios de línea calculados por la fórmula.
func TestBreakdownByRate_SumaTotales(t *testing.T) {
	items := []entity.LineItem{
		linea("A", 2, "10.00", 30, 21),
		linea("B", 1, "3.99", 25, 10),
		linea("C", 5, "0.75", 40, 4),
		linea("D", 1, "12.50", 0, 0),
	}

	esperado := decimal.Zero
	for _, it := range items {
		p := pricing.Compute(it.UnitCost, it.TaxPct, it.MarginPct).SalePrice
		esperado = esperado.Add(p.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	suma := decimal.Zero
	for _, b := range pricing.BreakdownByRate(items) {
		suma = suma.Add(b.Taxable)
	}
	assert.True(t, suma.Equal(esperado),
		"Σ buckets=%s debe igualar Σ líneas=%s", suma, esperado)
}

// TestBreakdownByRate_SinLineas: sin líneas no hay buckets.
func TestBreakdownByRate_SinLineas(t *testing.T) {
	assert.Empty(t, pricing.BreakdownByRate(nil))
	assert.Empty(t, pricing.BreakdownByRate([]entity.LineItem{}))
}

// TestBreakdownByRate_MismoTipoSeFusiona: dos líneas con el mismo tipo caen en
// un único bucket.
func TestBreakdownByRate_MismoTipoSeFusiona(t *testing.T) {
	items := []entity.LineItem{
		linea("A", 1, "10.00", 30, 21),
		linea("B", 1, "10.00", 30, 21),
	}
	buckets := pricing.BreakdownByRate(items)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].Taxable.Equal(decimal.RequireFromString("31.46")),
		"total esperado 31.46 (15.73 × 2), obtenido %s", buckets[0].Taxable)
}

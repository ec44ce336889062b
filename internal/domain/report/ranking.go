package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopN tamaño por defecto del ranking de productos.
const DefaultTopN = 10

// TopProducts ordena los productos por cantidad vendida descendente, con el
// beneficio descendente como desempate y el código de barras como desempate
// final estable, y trunca a n (DefaultTopN si n ≤ 0).
func TopProducts(stats map[string]*ProductStats, n int) []ProductStats {
	if n <= 0 {
		n = DefaultTopN
	}

	out := make([]ProductStats, 0, len(stats))
	for _, ps := range stats {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].Barcode < out[j].Barcode
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ChartPoint punto de la serie del gráfico de beneficios.
type ChartPoint struct {
	Label  string
	Profit decimal.Decimal
}

// ChartSeries serie para el gráfico de beneficios del informe. Sin filtro de
// categoría agrupa por categoría, ordenada por beneficio descendente y sin
// truncar (vista de categorías). Con filtro cambia a agrupación por producto,
// beneficio descendente, truncada a los 10 primeros (vista de detalle).
func ChartSeries(s Summary, categoryFilter string) []ChartPoint {
	var out []ChartPoint

	if categoryFilter == "" {
		out = make([]ChartPoint, 0, len(s.CategoryProfit))
		for cat, profit := range s.CategoryProfit {
			out = append(out, ChartPoint{Label: cat, Profit: profit})
		}
	} else {
		out = make([]ChartPoint, 0, len(s.ProductStats))
		for _, ps := range s.ProductStats {
			out = append(out, ChartPoint{Label: ps.Name, Profit: ps.Profit})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].Label < out[j].Label
	})

	if categoryFilter != "" && len(out) > DefaultTopN {
		out = out[:DefaultTopN]
	}
	return out
}

package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// TaxBucket acumulado por tipo de IVA.
type TaxBucket struct {
	Rate    decimal.Decimal // tipo de IVA del bucket
	Base    decimal.Decimal // Σ base imponible × cantidad
	Tax     decimal.Decimal // Σ cuota de IVA × cantidad
	Taxable decimal.Decimal // Σ precio final × cantidad
}

// BreakdownByRate agrupa las líneas por tipo de IVA. Cada línea se valora una
// única vez con Compute y sus tres importes se multiplican por la cantidad
// antes de acumularse en el bucket de su tipo. Los buckets se emiten
// ordenados ascendentemente por tipo.
//
// Invariante: Σ Taxable de todos los buckets = Σ line totals, con una
// tolerancia acumulada de ±0.01 por línea.
func BreakdownByRate(items []entity.LineItem) []TaxBucket {
	buckets := make(map[string]*TaxBucket)
	for _, it := range items {
		b := Compute(it.UnitCost, it.TaxPct, it.MarginPct)
		qty := decimal.NewFromInt(int64(it.Quantity))

		key := it.TaxPct.String()
		bucket, ok := buckets[key]
		if !ok {
			bucket = &TaxBucket{Rate: it.TaxPct}
			buckets[key] = bucket
		}
		bucket.Base = bucket.Base.Add(b.BeforeTax.Mul(qty))
		bucket.Tax = bucket.Tax.Add(b.Tax.Mul(qty))
		bucket.Taxable = bucket.Taxable.Add(b.SalePrice.Mul(qty))
	}

	out := make([]TaxBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rate.LessThan(out[j].Rate) })
	return out
}

package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// Valuator estima la pérdida monetaria de retirar quantity unidades de un
// producto. La valoración real exige el costo unitario del catálogo, que
// este motor no conoce; por eso es un hook inyectable.
type Valuator func(productID string, quantity int) decimal.Decimal

// FlatValuator valora cada unidad perdida a un importe fijo. Es una
// aproximación para cuando no hay lookup de costos disponible.
func FlatValuator(perUnit decimal.Decimal) Valuator {
	return func(_ string, quantity int) decimal.Decimal {
		return perUnit.Mul(decimal.NewFromInt(int64(quantity)))
	}
}

// AdjustmentImpact impacto agregado de los ajustes de un producto.
type AdjustmentImpact struct {
	ProductID     string
	ProductName   string
	DecreaseCount int
	IncreaseCount int
	NetQuantity   int
	EstimatedLoss decimal.Decimal
	LatestDate    time.Time
}

// AnalyzeAdjustments agrupa los ajustes por producto. Los decrease suman al
// contador de bajas, restan de la cantidad neta y aportan pérdida estimada
// vía el Valuator; los increase suman al contador de altas y a la cantidad
// neta. Se conserva la fecha efectiva más reciente por producto. El resultado
// sale ordenado por pérdida estimada descendente, con el identificador de
// producto como desempate estable.
func AnalyzeAdjustments(adjustments []entity.InventoryAdjustment, valuate Valuator) []AdjustmentImpact {
	byProduct := make(map[string]*AdjustmentImpact)

	for _, adj := range adjustments {
		impact, ok := byProduct[adj.ProductID]
		if !ok {
			impact = &AdjustmentImpact{ProductID: adj.ProductID, ProductName: adj.ProductName}
			byProduct[adj.ProductID] = impact
		}

		switch adj.Type {
		case entity.AdjustmentDecrease:
			impact.DecreaseCount++
			impact.NetQuantity -= adj.Quantity
			impact.EstimatedLoss = impact.EstimatedLoss.Add(valuate(adj.ProductID, adj.Quantity))
		case entity.AdjustmentIncrease:
			impact.IncreaseCount++
			impact.NetQuantity += adj.Quantity
		}

		if adj.Date.After(impact.LatestDate) {
			impact.LatestDate = adj.Date
		}
	}

	out := make([]AdjustmentImpact, 0, len(byProduct))
	for _, impact := range byProduct {
		out = append(out, *impact)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EstimatedLoss.Equal(out[j].EstimatedLoss) {
			return out[i].EstimatedLoss.GreaterThan(out[j].EstimatedLoss)
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

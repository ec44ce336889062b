package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/report"
)

func ajuste(productID, name, tipo string, qty int, day int) entity.InventoryAdjustment {
	return entity.InventoryAdjustment{
		ProductID:   productID,
		ProductName: name,
		Type:        tipo,
		Quantity:    qty,
		Reason:      "recuento",
		Date:        time.Date(2025, 5, day, 10, 0, 0, 0, time.UTC),
	}
}

func TestAnalyzeAdjustments_AgrupaYCuentaPorProducto(t *testing.T) {
	ajustes := []entity.InventoryAdjustment{
		ajuste("p1", "Pan", entity.AdjustmentDecrease, 3, 1),
		ajuste("p1", "Pan", entity.AdjustmentIncrease, 5, 2),
		ajuste("p1", "Pan", entity.AdjustmentDecrease, 2, 3),
		ajuste("p2", "Leche", entity.AdjustmentIncrease, 10, 4),
	}

	impactos := report.AnalyzeAdjustments(ajustes, report.FlatValuator(decimal.RequireFromString("1.00")))
	require.Len(t, impactos, 2)

	var pan report.AdjustmentImpact
	for _, imp := range impactos {
		if imp.ProductID == "p1" {
			pan = imp
		}
	}
	assert.Equal(t, 2, pan.DecreaseCount)
	assert.Equal(t, 1, pan.IncreaseCount)
	assert.Equal(t, 0, pan.NetQuantity, "−3 + 5 − 2 = 0")
	assert.True(t, pan.EstimatedLoss.Equal(decimal.RequireFromString("5.00")),
		"solo los decrease aportan pérdida: (3+2) × 1.00")
	assert.Equal(t, time.Date(2025, 5, 3, 10, 0, 0, 0, time.UTC), pan.LatestDate,
		"debe conservarse la fecha efectiva más reciente")
}

func TestAnalyzeAdjustments_OrdenaPorPerdidaDescendente(t *testing.T) {
	ajustes := []entity.InventoryAdjustment{
		ajuste("p1", "Pan", entity.AdjustmentDecrease, 1, 1),
		ajuste("p2", "Leche", entity.AdjustmentDecrease, 7, 1),
		ajuste("p3", "Vino", entity.AdjustmentDecrease, 4, 1),
	}

	impactos := report.AnalyzeAdjustments(ajustes, report.FlatValuator(decimal.RequireFromString("1.00")))
	require.Len(t, impactos, 3)
	assert.Equal(t, "p2", impactos[0].ProductID)
	assert.Equal(t, "p3", impactos[1].ProductID)
	assert.Equal(t, "p1", impactos[2].ProductID)
}

func TestAnalyzeAdjustments_ValuadorInyectable(t *testing.T) {
	// Valuador con lookup real de costos por producto.
	costos := map[string]decimal.Decimal{
		"p1": decimal.RequireFromString("2.50"),
		"p2": decimal.RequireFromString("0.40"),
	}
	valuar := func(productID string, qty int) decimal.Decimal {
		return costos[productID].Mul(decimal.NewFromInt(int64(qty)))
	}

	ajustes := []entity.InventoryAdjustment{
		ajuste("p1", "Pan", entity.AdjustmentDecrease, 2, 1),
		ajuste("p2", "Leche", entity.AdjustmentDecrease, 10, 1),
	}

	impactos := report.AnalyzeAdjustments(ajustes, valuar)
	require.Len(t, impactos, 2)
	// p1: 2 × 2.50 = 5.00; p2: 10 × 0.40 = 4.00 ⇒ p1 primero.
	assert.Equal(t, "p1", impactos[0].ProductID)
	assert.True(t, impactos[0].EstimatedLoss.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, impactos[1].EstimatedLoss.Equal(decimal.RequireFromString("4.00")))
}

func TestAnalyzeAdjustments_SoloIncreasesSinPerdida(t *testing.T) {
	ajustes := []entity.InventoryAdjustment{
		ajuste("p1", "Pan", entity.AdjustmentIncrease, 5, 1),
	}

	impactos := report.AnalyzeAdjustments(ajustes, report.FlatValuator(decimal.RequireFromString("1.00")))
	require.Len(t, impactos, 1)
	assert.Equal(t, 5, impactos[0].NetQuantity)
	assert.True(t, impactos[0].EstimatedLoss.IsZero())
}

func TestAnalyzeAdjustments_Vacio(t *testing.T) {
	assert.Empty(t, report.AnalyzeAdjustments(nil, report.FlatValuator(decimal.Zero)))
}

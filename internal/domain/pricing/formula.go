// Package pricing implementa la fórmula determinista de precios del TPV
// (servicio de dominio, sin dependencias de infraestructura).
//
// La misma fórmula se evalúa en caja al vender y se re-deriva después para
// auditoría, por lo que debe producir resultados idénticos en ambos sitios.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Breakdown descomposición del precio de venta de una unidad.
type Breakdown struct {
	Profit    decimal.Decimal // beneficio: costo × margen / 100
	BeforeTax decimal.Decimal // base imponible: costo + beneficio
	Tax       decimal.Decimal // cuota de IVA: base × tipo / 100
	SalePrice decimal.Decimal // precio final: base + cuota
}

// Compute aplica la fórmula en cuatro pasos, redondeando a 2 decimales ANTES
// de que el siguiente paso consuma el resultado. El redondeo intermedio no es
// cosmético: es la única forma de que dos evaluaciones independientes del
// mismo triple (costo, margen, IVA) converjan al mismo precio.
//
// decimal.Round redondea half-away-from-zero, el modo requerido.
//
// La fórmula es total sobre su dominio; un costo ≤ 0 produce un precio
// degenerado que los llamadores deben rechazar antes de invocar.
func Compute(unitCost, taxPct, marginPct decimal.Decimal) Breakdown {
	profit := unitCost.Mul(marginPct).Div(hundred).Round(2)
	beforeTax := unitCost.Add(profit).Round(2)
	tax := beforeTax.Mul(taxPct).Div(hundred).Round(2)
	salePrice := beforeTax.Add(tax).Round(2)

	return Breakdown{
		Profit:    profit,
		BeforeTax: beforeTax,
		Tax:       tax,
		SalePrice: salePrice,
	}
}

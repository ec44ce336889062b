package pricing

import "github.com/shopspring/decimal"

// Tolerancia de comparación entre el precio local y el remoto: medio céntimo.
var verifyTolerance = decimal.RequireFromString("0.005")

// Verify recalcula el precio de venta localmente y lo compara con el obtenido
// por una evaluación independiente (remota) de la misma fórmula.
//
// Es un mecanismo de detección/auditoría, no una puerta de validación: ante
// un mismatch el llamador debe registrar un diagnóstico con los inputs y
// ambos valores, pero nunca bloquear la venta.
func Verify(unitCost, taxPct, marginPct, remoteSalePrice decimal.Decimal) bool {
	local := Compute(unitCost, taxPct, marginPct).SalePrice
	return local.Sub(remoteSalePrice).Abs().LessThanOrEqual(verifyTolerance)
}

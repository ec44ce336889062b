package entity

import "time"

// Tipos de ajuste de inventario.
const (
	AdjustmentIncrease = "increase" // entrada: recuento al alza, devolución
	AdjustmentDecrease = "decrease" // salida: merma, rotura, caducidad
)

// InventoryAdjustment ajuste de inventario registrado por el colaborador de
// gestión de stock. Inmutable una vez creado; el analizador de impacto lo
// consume en modo solo lectura.
type InventoryAdjustment struct {
	ID          string
	ProductID   string
	ProductName string
	Type        string // increase | decrease
	Quantity    int    // siempre positivo; el signo lo da Type
	Reason      string // código de motivo (merma, rotura, recuento...)
	Date        time.Time
}

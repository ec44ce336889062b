package dto

import "time"

// AdjustmentRequest registro de un ajuste de inventario por el colaborador de
// gestión de stock. Quantity siempre positivo; el signo lo da Type.
type AdjustmentRequest struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"` // increase | decrease
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Date        time.Time `json:"date"`
}

// AdjustmentResponse ajuste persistido.
type AdjustmentResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Date        time.Time `json:"date"`
}

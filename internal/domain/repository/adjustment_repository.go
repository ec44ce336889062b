package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// AdjustmentQuery parámetros de la consulta de ajustes de inventario. Limit
// admite valores grandes: la analítica hace un bulk pull, no paginación real.
type AdjustmentQuery struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// AdjustmentRepository define el puerto de lectura/escritura de ajustes.
// Los ajustes son inmutables una vez creados.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.InventoryAdjustment) error
	ListByDateRange(ctx context.Context, q AdjustmentQuery) ([]entity.InventoryAdjustment, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// OrderQuery parámetros de la consulta histórica de pedidos. El filtro de
// categoría NO viaja aquí: se aplica localmente sobre el resultado.
type OrderQuery struct {
	From            time.Time
	To              time.Time
	PaymentMethod   string // vacío = todos
	IncludeArchived bool
}

// OrderSet pedidos del rango, ya particionados en activos y archivados.
type OrderSet struct {
	Active   []entity.Order
	Archived []entity.Order
}

// OrderRepository define el puerto de persistencia para pedidos (DIP).
type OrderRepository interface {
	// Create persiste el pedido con sus líneas y su desglose de IVA en una
	// única transacción.
	Create(ctx context.Context, order *entity.Order) error

	GetByID(ctx context.Context, id string) (*entity.Order, error)

	// ListByDateRange devuelve los pedidos cuyo instante de venta cae dentro
	// del rango, particionados por estado de archivado. Con
	// IncludeArchived=false la partición Archived llega vacía.
	ListByDateRange(ctx context.Context, q OrderQuery) (*OrderSet, error)

	// Archive marca el pedido como archivado sin borrarlo.
	Archive(ctx context.Context, id string) error
}

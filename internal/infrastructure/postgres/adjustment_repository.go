package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste el ajuste. Los ajustes son inmutables: no hay Update.
func (r *AdjustmentRepo) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	if adj.ID == "" {
		adj.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_adjustments (id, product_id, product_name, type, quantity, reason, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		adj.ID, adj.ProductID, adj.ProductName, adj.Type, adj.Quantity, adj.Reason, adj.Date,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// ListByDateRange devuelve los ajustes del rango. El límite admite valores
// grandes: la analítica hace un bulk pull.
func (r *AdjustmentRepo) ListByDateRange(ctx context.Context, q repository.AdjustmentQuery) ([]entity.InventoryAdjustment, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, product_name, type, quantity, reason, date
		FROM inventory_adjustments
		WHERE date >= $1 AND date <= $2
		ORDER BY date
		LIMIT $3 OFFSET $4`,
		q.From, q.To, limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("select adjustments: %w", err)
	}
	defer rows.Close()

	var out []entity.InventoryAdjustment
	for rows.Next() {
		var adj entity.InventoryAdjustment
		if err := rows.Scan(&adj.ID, &adj.ProductID, &adj.ProductName, &adj.Type,
			&adj.Quantity, &adj.Reason, &adj.Date); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, adj)
	}
	return out, rows.Err()
}

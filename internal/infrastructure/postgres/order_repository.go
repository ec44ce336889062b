package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create persiste el pedido, sus líneas y su desglose de IVA en una única
// transacción: o entra todo o no entra nada.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, total_amount, discount_amount, payment_method, invoice_type,
		                    customer_name, customer_tax_id, date, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.TotalAmount, order.DiscountAmount, order.PaymentMethod, order.InvoiceType,
		nullIfEmpty(order.CustomerName), nullIfEmpty(order.CustomerTaxID),
		order.Date, order.Archived, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, order.ID)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, barcode, name, category, quantity,
			                         unit_cost, margin_pct, tax_pct, unit_price, line_total, pricing_source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			uuid.New().String(), order.ID, i, it.Barcode, it.Name, it.Category, it.Quantity,
			it.UnitCost, it.MarginPct, it.TaxPct, it.UnitPrice, it.LineTotal, it.PricingSource,
		)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	for _, tl := range order.TaxBreakdown {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_tax_lines (id, order_id, rate, base, tax)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), order.ID, tl.Rate, tl.Base, tl.Tax,
		)
		if err != nil {
			return fmt.Errorf("insert tax line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido completo: cabecera, líneas y desglose de IVA.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	var customerName, customerTaxID *string

	err := r.pool.QueryRow(ctx, `
		SELECT id, total_amount, discount_amount, payment_method, invoice_type,
		       customer_name, customer_tax_id, date, archived, created_at
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.TotalAmount, &o.DiscountAmount, &o.PaymentMethod, &o.InvoiceType,
		&customerName, &customerTaxID, &o.Date, &o.Archived, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	if customerName != nil {
		o.CustomerName = *customerName
	}
	if customerTaxID != nil {
		o.CustomerTaxID = *customerTaxID
	}

	o.Items, err = r.itemsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	o.TaxBreakdown, err = r.taxLinesOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByDateRange devuelve los pedidos del rango particionados por estado de
// archivado. Carga líneas y desglose de cada pedido: la analítica necesita el
// detalle completo.
func (r *OrderRepo) ListByDateRange(ctx context.Context, q repository.OrderQuery) (*repository.OrderSet, error) {
	query := `
		SELECT id, total_amount, discount_amount, payment_method, invoice_type,
		       customer_name, customer_tax_id, date, archived, created_at
		FROM orders
		WHERE date >= $1 AND date <= $2`
	args := []any{q.From, q.To}

	if q.PaymentMethod != "" {
		query += fmt.Sprintf(" AND payment_method = $%d", len(args)+1)
		args = append(args, q.PaymentMethod)
	}
	if !q.IncludeArchived {
		query += " AND archived = FALSE"
	}
	query += " ORDER BY date"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var set repository.OrderSet
	for rows.Next() {
		var o entity.Order
		var customerName, customerTaxID *string
		if err := rows.Scan(&o.ID, &o.TotalAmount, &o.DiscountAmount, &o.PaymentMethod, &o.InvoiceType,
			&customerName, &customerTaxID, &o.Date, &o.Archived, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if customerName != nil {
			o.CustomerName = *customerName
		}
		if customerTaxID != nil {
			o.CustomerTaxID = *customerTaxID
		}
		if o.Archived {
			set.Archived = append(set.Archived, o)
		} else {
			set.Active = append(set.Active, o)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range set.Active {
		if set.Active[i].Items, err = r.itemsOf(ctx, set.Active[i].ID); err != nil {
			return nil, err
		}
	}
	for i := range set.Archived {
		if set.Archived[i].Items, err = r.itemsOf(ctx, set.Archived[i].ID); err != nil {
			return nil, err
		}
	}
	return &set, nil
}

// Archive marca el pedido como archivado.
func (r *OrderRepo) Archive(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET archived = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("archive order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderRepo) itemsOf(ctx context.Context, orderID string) ([]entity.LineItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT barcode, name, category, quantity, unit_cost, margin_pct, tax_pct,
		       unit_price, line_total, pricing_source
		FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.Barcode, &it.Name, &it.Category, &it.Quantity, &it.UnitCost,
			&it.MarginPct, &it.TaxPct, &it.UnitPrice, &it.LineTotal, &it.PricingSource); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepo) taxLinesOf(ctx context.Context, orderID string) ([]entity.TaxLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rate, base, tax FROM order_tax_lines WHERE order_id = $1 ORDER BY rate`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select tax lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.TaxLine
	for rows.Next() {
		var tl entity.TaxLine
		if err := rows.Scan(&tl.Rate, &tl.Base, &tl.Tax); err != nil {
			return nil, fmt.Errorf("scan tax line: %w", err)
		}
		lines = append(lines, tl)
	}
	return lines, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste la categoría. El nombre es único.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, name, default_margin_pct, default_tax_pct, sort_order)
		VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.Name, category.DefaultMarginPct, category.DefaultTaxPct, category.SortOrder,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por identificador.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getBy(ctx, "id", id)
}

// GetByName obtiene una categoría por nombre exacto. Es el lookup de defaults
// de los ítems legados.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getBy(ctx, "name", name)
}

func (r *CategoryRepo) getBy(ctx context.Context, column, value string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, name, default_margin_pct, default_tax_pct, sort_order
		FROM categories WHERE %s = $1`, column), value,
	).Scan(&c.ID, &c.Name, &c.DefaultMarginPct, &c.DefaultTaxPct, &c.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, value)
		}
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &c, nil
}

// List devuelve todas las categorías ordenadas para mostrar.
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, default_margin_pct, default_tax_pct, sort_order
		FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DefaultMarginPct, &c.DefaultTaxPct, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update modifica la categoría.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE categories
		SET name = $2, default_margin_pct = $3, default_tax_pct = $4, sort_order = $5
		WHERE id = $1`,
		category.ID, category.Name, category.DefaultMarginPct, category.DefaultTaxPct, category.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, category.ID)
	}
	return nil
}

// Delete elimina la categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return nil
}

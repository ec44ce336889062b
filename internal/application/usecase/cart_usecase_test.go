package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/cart"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

type fakeCategoryRepo struct {
	byName map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error { return nil }
func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	if c, ok := f.byName[name]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}
func (f *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return nil
}
func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error { return nil }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCartUseCase_ItemExplicito(t *testing.T) {
	uc := usecase.NewCartUseCase(cart.NewRegistry(999), &fakeCategoryRepo{})
	session := uc.OpenSession()

	state, err := uc.AddItem(context.Background(), session, dto.AddItemRequest{
		Barcode:   "A",
		Name:      "Pan",
		Category:  "Panadería",
		Quantity:  2,
		UnitCost:  dec("10.00"),
		MarginPct: dec("30"),
		TaxPct:    dec("21"),
	})
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, entity.PricingExplicit, state.Items[0].PricingSource)
	assert.True(t, state.Total.Equal(decimal.RequireFromString("31.46")))
}

func TestCartUseCase_ItemLegadoTomaDefaultsDeCategoria(t *testing.T) {
	cats := &fakeCategoryRepo{byName: map[string]*entity.Category{
		"Lácteos": {
			ID:               "c1",
			Name:             "Lácteos",
			DefaultMarginPct: decimal.NewFromInt(25),
			DefaultTaxPct:    decimal.NewFromInt(4),
		},
	}}
	uc := usecase.NewCartUseCase(cart.NewRegistry(999), cats)
	session := uc.OpenSession()

	// Ítem legado: trae costo pero ni margen ni IVA.
	state, err := uc.AddItem(context.Background(), session, dto.AddItemRequest{
		Barcode:  "B",
		Name:     "Leche",
		Category: "Lácteos",
		Quantity: 1,
		UnitCost: dec("0.80"),
	})
	require.NoError(t, err)
	require.Len(t, state.Items, 1)

	line := state.Items[0]
	assert.Equal(t, entity.PricingCategoryDefault, line.PricingSource,
		"la línea debe quedar etiquetada como precio por defaults de categoría")
	assert.True(t, line.MarginPct.Equal(decimal.NewFromInt(25)))
	assert.True(t, line.TaxPct.Equal(decimal.NewFromInt(4)))
	// 0.80 + 0.20 = 1.00; 1.00 × 4% = 0.04 → precio 1.04
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("1.04")),
		"precio derivado esperado 1.04, obtenido %s", line.UnitPrice)
}

func TestCartUseCase_ItemLegadoSinCategoriaResolubleSeRechaza(t *testing.T) {
	uc := usecase.NewCartUseCase(cart.NewRegistry(999), &fakeCategoryRepo{})
	session := uc.OpenSession()

	_, err := uc.AddItem(context.Background(), session, dto.AddItemRequest{
		Barcode:  "C",
		Name:     "Misterio",
		Category: "Inexistente",
		Quantity: 1,
		UnitCost: dec("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"nunca se defaultea en silencio a un margen/IVA fijo")
}

func TestCartUseCase_SesionDesconocida(t *testing.T) {
	uc := usecase.NewCartUseCase(cart.NewRegistry(999), &fakeCategoryRepo{})

	_, err := uc.Get("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

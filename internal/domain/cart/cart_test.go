package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/cart"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

func itemPan(qty int) entity.LineItem {
	return entity.LineItem{
		Barcode:   "8400000000017",
		Name:      "Pan de molde",
		Category:  "Panadería",
		Quantity:  qty,
		UnitCost:  decimal.RequireFromString("10.00"),
		MarginPct: decimal.NewFromInt(30),
		TaxPct:    decimal.NewFromInt(21),
	}
}

// TestAddItem_FusionaPorCodigoDeBarras: add(A, qty=2) seguido de add(A, qty=3)
// equivale en cantidad final a un único add(A, qty=5).
func TestAddItem_FusionaPorCodigoDeBarras(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(2)))
	require.NoError(t, c.AddItem(itemPan(3)))

	items := c.Items()
	require.Len(t, items, 1, "dos adds del mismo código deben fusionarse en una línea")
	assert.Equal(t, 5, items[0].Quantity)

	otro := cart.New(999)
	require.NoError(t, otro.AddItem(itemPan(5)))
	assert.True(t, c.Total().Equal(otro.Total()),
		"el total tras fusionar debe igualar al de un único add con la cantidad sumada")
}

// TestAddItem_FusionRefrescaPrecios: al fusionar, los campos de precio
// reflejan los últimos valores aportados, no los del primer add.
func TestAddItem_FusionRefrescaPrecios(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(2)))

	actualizado := itemPan(1)
	actualizado.UnitCost = decimal.RequireFromString("12.00")
	actualizado.MarginPct = decimal.NewFromInt(25)
	require.NoError(t, c.AddItem(actualizado))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].UnitCost.Equal(decimal.RequireFromString("12.00")),
		"el costo debe ser el último aportado")
	assert.True(t, items[0].MarginPct.Equal(decimal.NewFromInt(25)),
		"el margen debe ser el último aportado")
	// 12.00 + 3.00 = 15.00; 15.00 × 21% = 3.15 → precio 18.15
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("18.15")),
		"el precio debe re-derivarse con los últimos campos, obtenido %s", items[0].UnitPrice)
}

// TestAddItem_DerivaPrecioConLaFormula: un add sin precio explícito lo deriva
// del triple costo/margen/IVA.
func TestAddItem_DerivaPrecioConLaFormula(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(1)))
	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("15.73")),
		"precio derivado esperado 15.73, obtenido %s", items[0].UnitPrice)
	assert.True(t, items[0].LineTotal.Equal(decimal.RequireFromString("15.73")))
}

// TestAddItem_RechazaInputsInvalidos: cantidad < 1, costo no positivo, IVA
// fuera del conjunto admitido y código vacío.
func TestAddItem_RechazaInputsInvalidos(t *testing.T) {
	c := cart.New(999)

	sinCantidad := itemPan(0)
	assert.ErrorIs(t, c.AddItem(sinCantidad), domain.ErrInvalidInput)

	costoCero := itemPan(1)
	costoCero.UnitCost = decimal.Zero
	assert.ErrorIs(t, c.AddItem(costoCero), domain.ErrInvalidInput)

	ivaRaro := itemPan(1)
	ivaRaro.TaxPct = decimal.NewFromInt(15)
	assert.ErrorIs(t, c.AddItem(ivaRaro), domain.ErrInvalidInput)

	sinCodigo := itemPan(1)
	sinCodigo.Barcode = ""
	assert.ErrorIs(t, c.AddItem(sinCodigo), domain.ErrInvalidInput)

	assert.True(t, c.IsEmpty(), "ningún add inválido debe dejar rastro")
}

// TestRemoveItem_UltimaLineaVaciaElCarrito cubre la transición populated→empty.
func TestRemoveItem_UltimaLineaVaciaElCarrito(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(2)))
	require.False(t, c.IsEmpty())

	require.NoError(t, c.RemoveItem("8400000000017"))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())

	assert.ErrorIs(t, c.RemoveItem("8400000000017"), domain.ErrNotFound)
}

// TestSetQuantity_RechazoEsNoOp: una cantidad fuera de rango se rechaza y el
// valor existente se conserva.
func TestSetQuantity_RechazoEsNoOp(t *testing.T) {
	c := cart.New(10)
	require.NoError(t, c.AddItem(itemPan(2)))

	assert.ErrorIs(t, c.SetQuantity("8400000000017", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.SetQuantity("8400000000017", 11), domain.ErrInvalidInput)
	assert.Equal(t, 2, c.Items()[0].Quantity, "el rechazo debe conservar la cantidad previa")

	require.NoError(t, c.SetQuantity("8400000000017", 7))
	assert.Equal(t, 7, c.Items()[0].Quantity)
}

// TestSetPrice_OverrideManual: un precio válido sobreescribe el derivado y el
// total no re-aplica la fórmula.
func TestSetPrice_OverrideManual(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(2)))

	require.NoError(t, c.SetPrice("8400000000017", "14.00"))
	assert.True(t, c.Total().Equal(decimal.RequireFromString("28.00")),
		"el total debe usar el precio manual, obtenido %s", c.Total())
}

// TestSetPrice_RechazaNoNumericoYNegativo: el precio anterior se conserva.
func TestSetPrice_RechazaNoNumericoYNegativo(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(1)))
	previo := c.Items()[0].UnitPrice

	assert.ErrorIs(t, c.SetPrice("8400000000017", "abc"), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.SetPrice("8400000000017", "-1.00"), domain.ErrInvalidInput)
	assert.True(t, c.Items()[0].UnitPrice.Equal(previo),
		"un set-price rechazado debe dejar el precio intacto")
}

// TestClear_FuerzaVacio.
func TestClear_FuerzaVacio(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(3)))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

// TestTaxBreakdown_DesdeLasLineasActuales.
func TestTaxBreakdown_DesdeLasLineasActuales(t *testing.T) {
	c := cart.New(999)
	require.NoError(t, c.AddItem(itemPan(2)))

	leche := entity.LineItem{
		Barcode:   "8400000000024",
		Name:      "Leche entera",
		Category:  "Lácteos",
		Quantity:  1,
		UnitCost:  decimal.RequireFromString("0.80"),
		MarginPct: decimal.NewFromInt(25),
		TaxPct:    decimal.NewFromInt(4),
	}
	require.NoError(t, c.AddItem(leche))

	buckets := c.TaxBreakdown()
	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].Rate.Equal(decimal.NewFromInt(4)))
	assert.True(t, buckets[1].Rate.Equal(decimal.NewFromInt(21)))
}

// TestRegistry_SesionesIndependientes: cada sesión posee su carrito.
func TestRegistry_SesionesIndependientes(t *testing.T) {
	reg := cart.NewRegistry(999)

	a := reg.Open()
	b := reg.Open()
	require.NotEqual(t, a, b)

	cartA, err := reg.Get(a)
	require.NoError(t, err)
	require.NoError(t, cartA.AddItem(itemPan(1)))

	cartB, err := reg.Get(b)
	require.NoError(t, err)
	assert.True(t, cartB.IsEmpty(), "las sesiones no comparten estado")

	require.NoError(t, reg.Close(a))
	_, err = reg.Get(a)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, reg.Close(a), domain.ErrNotFound)
}

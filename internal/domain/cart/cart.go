// Package cart mantiene el estado de una venta en curso: las líneas, el total
// acumulado y el desglose de IVA. Cada venta es un objeto Cart propio que se
// pasa por referencia a las operaciones; no existe un carrito global.
package cart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/pricing"
)

// Cart acumulador de líneas de una venta. Seguro para uso concurrente.
type Cart struct {
	mu          sync.Mutex
	maxQuantity int
	lines       []entity.LineItem
}

// New crea un carrito vacío. maxQuantity acota set-quantity y los merges por
// código de barras; un valor ≤ 0 se normaliza al límite por defecto de 999.
func New(maxQuantity int) *Cart {
	if maxQuantity <= 0 {
		maxQuantity = 999
	}
	return &Cart{maxQuantity: maxQuantity}
}

// AddItem incorpora una línea. Si el código de barras ya existe se fusiona:
// la cantidad se incrementa y los campos de costo/margen/IVA recién
// suministrados sustituyen a los anteriores (los campos de precio reflejan
// los últimos valores aportados). Si el precio unitario llega en cero se
// deriva con la fórmula; un precio > 0 se respeta como override manual.
func (c *Cart) AddItem(item entity.LineItem) error {
	if item.Barcode == "" {
		return fmt.Errorf("%w: código de barras vacío", domain.ErrInvalidInput)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: cantidad %d inválida", domain.ErrInvalidInput, item.Quantity)
	}
	if !item.UnitCost.IsPositive() {
		return fmt.Errorf("%w: costo %s no positivo", domain.ErrInvalidInput, item.UnitCost)
	}
	if !entity.IsAllowedTaxRate(item.TaxPct) {
		return fmt.Errorf("%w: tipo de IVA %s no admitido", domain.ErrInvalidInput, item.TaxPct)
	}

	if item.UnitPrice.IsZero() {
		item.UnitPrice = pricing.Compute(item.UnitCost, item.TaxPct, item.MarginPct).SalePrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode != item.Barcode {
			continue
		}
		merged := c.lines[i].Quantity + item.Quantity
		if merged > c.maxQuantity {
			return fmt.Errorf("%w: cantidad acumulada %d supera el máximo %d",
				domain.ErrInvalidInput, merged, c.maxQuantity)
		}
		c.lines[i].Quantity = merged
		c.lines[i].Name = item.Name
		c.lines[i].Category = item.Category
		c.lines[i].UnitCost = item.UnitCost
		c.lines[i].MarginPct = item.MarginPct
		c.lines[i].TaxPct = item.TaxPct
		c.lines[i].UnitPrice = item.UnitPrice
		c.lines[i].PricingSource = item.PricingSource
		c.lines[i].RecalcTotal()
		return nil
	}

	if item.Quantity > c.maxQuantity {
		return fmt.Errorf("%w: cantidad %d supera el máximo %d",
			domain.ErrInvalidInput, item.Quantity, c.maxQuantity)
	}
	item.RecalcTotal()
	c.lines = append(c.lines, item)
	return nil
}

// RemoveItem elimina la línea con ese código de barras. Quitar la última
// línea deja el carrito vacío.
func (c *Cart) RemoveItem(barcode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode == barcode {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: línea %s", domain.ErrNotFound, barcode)
}

// SetQuantity fija la cantidad de una línea. Cantidades < 1 o > máximo se
// rechazan sin tocar el valor existente.
func (c *Cart) SetQuantity(barcode string, quantity int) error {
	if quantity < 1 || quantity > c.maxQuantity {
		return fmt.Errorf("%w: cantidad %d fuera de [1, %d]",
			domain.ErrInvalidInput, quantity, c.maxQuantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode == barcode {
			c.lines[i].Quantity = quantity
			c.lines[i].RecalcTotal()
			return nil
		}
	}
	return fmt.Errorf("%w: línea %s", domain.ErrNotFound, barcode)
}

// SetPrice sobreescribe el precio de venta de una línea (descuento manual a
// nivel de línea). Solo acepta inputs que parsean como número no negativo; en
// caso contrario rechaza y el precio anterior se conserva.
func (c *Cart) SetPrice(barcode, raw string) error {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: precio %q no numérico", domain.ErrInvalidInput, raw)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: precio %s negativo", domain.ErrInvalidInput, price)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode == barcode {
			c.lines[i].UnitPrice = price
			c.lines[i].RecalcTotal()
			return nil
		}
	}
	return fmt.Errorf("%w: línea %s", domain.ErrNotFound, barcode)
}

// Clear fuerza el estado vacío.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total suma precio unitario × cantidad sobre todas las líneas. No re-aplica
// la fórmula de precios: los overrides manuales deben sobrevivir.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Items devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Items() []entity.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entity.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// TaxBreakdown desglose de IVA de las líneas actuales, ordenado por tipo.
func (c *Cart) TaxBreakdown() []pricing.TaxBucket {
	return pricing.BreakdownByRate(c.Items())
}

// IsEmpty indica si el carrito está en el estado vacío.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Len número de líneas distintas.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

package report

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

// FilterResult pedidos filtrados y los contadores de partición originales.
type FilterResult struct {
	Orders        []entity.Order
	ActiveCount   int
	ArchivedCount int
}

// quita marcas diacríticas para que "Panaderia" y "Panadería" casen igual.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeCategory(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// FilterByCategory filtra pedidos por nombre de categoría (insensible a
// mayúsculas y acentos).
//
// Sin categoría devuelve todos los pedidos tal cual, con los contadores
// tomados directamente de la partición activos/archivados. Con categoría:
// conserva solo los ítems cuya categoría casa, descarta pedidos que quedan a
// cero ítems y recalcula el total del pedido como la suma de los line totals
// conservados. El descuento NO se reescala.
//
// Los contadores se computan de forma independiente sobre las particiones
// ORIGINALES con el predicado "tiene al menos un ítem que casa", no sobre la
// lista final aplanada.
func FilterByCategory(active, archived []entity.Order, category string) FilterResult {
	if strings.TrimSpace(category) == "" {
		all := make([]entity.Order, 0, len(active)+len(archived))
		all = append(all, active...)
		all = append(all, archived...)
		return FilterResult{Orders: all, ActiveCount: len(active), ArchivedCount: len(archived)}
	}

	want := normalizeCategory(category)
	matches := func(it entity.LineItem) bool { return normalizeCategory(it.Category) == want }

	countMatching := func(orders []entity.Order) int {
		n := 0
		for _, o := range orders {
			for _, it := range o.Items {
				if matches(it) {
					n++
					break
				}
			}
		}
		return n
	}

	keep := func(orders []entity.Order, out []entity.Order) []entity.Order {
		for _, o := range orders {
			kept := make([]entity.LineItem, 0, len(o.Items))
			total := decimal.Zero
			for _, it := range o.Items {
				if matches(it) {
					kept = append(kept, it)
					total = total.Add(it.LineTotal)
				}
			}
			if len(kept) == 0 {
				continue
			}
			filtered := o
			filtered.Items = kept
			filtered.TotalAmount = total
			out = append(out, filtered)
		}
		return out
	}

	result := FilterResult{
		ActiveCount:   countMatching(active),
		ArchivedCount: countMatching(archived),
	}
	result.Orders = keep(active, nil)
	result.Orders = keep(archived, result.Orders)
	if result.Orders == nil {
		result.Orders = []entity.Order{}
	}
	return result
}

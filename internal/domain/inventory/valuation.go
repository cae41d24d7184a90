package inventory

import (
	"sort"

	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CategoryValue agregado de una categoría dentro de una tienda.
type CategoryValue struct {
	Category      string
	TotalValue    decimal.Decimal
	TotalQuantity int
	ProductCount  int
}

// Valuation valor del inventario de una tienda. Los montos son exactos; el redondeo a 2
// decimales se hace al serializar la respuesta.
type Valuation struct {
	TotalValue    decimal.Decimal
	TotalQuantity int
	TotalProducts int
	Breakdown     []CategoryValue // ordenado por categoría
}

// Valuate agrupa los productos por categoría y suma quantity × price con aritmética decimal.
// Los totales del resumen se obtienen re-sumando los grupos.
func Valuate(products []*entity.Product) Valuation {
	groups := make(map[string]*CategoryValue)
	for _, p := range products {
		if p == nil {
			continue
		}
		g, ok := groups[p.Category]
		if !ok {
			g = &CategoryValue{Category: p.Category, TotalValue: decimal.Zero}
			groups[p.Category] = g
		}
		g.TotalValue = g.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		g.TotalQuantity += p.Quantity
		g.ProductCount++
	}

	v := Valuation{TotalValue: decimal.Zero, Breakdown: make([]CategoryValue, 0, len(groups))}
	for _, g := range groups {
		v.Breakdown = append(v.Breakdown, *g)
	}
	sort.Slice(v.Breakdown, func(i, j int) bool {
		return v.Breakdown[i].Category < v.Breakdown[j].Category
	})
	for _, g := range v.Breakdown {
		v.TotalValue = v.TotalValue.Add(g.TotalValue)
		v.TotalQuantity += g.TotalQuantity
		v.TotalProducts += g.ProductCount
	}
	return v
}

package stock

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/almacen-pro/almacen-api/internal/domain/entity"
)

// CurrentStock calcula el stock actual de un artículo: fold sobre todos los
// movimientos del kardex donde ItemID coincide. Entrada suma, Salida resta.
// El fold es puro y conmutativo: cualquier permutación del kardex da el mismo
// resultado, por eso el stock se recalcula siempre desde la fuente y nunca se
// cachea de forma durable. Las cantidades no parseables se omiten y se
// devuelven en skipped para que el caller las loguee.
func CurrentStock(itemID string, movements []entity.Movement) (total int, skipped []entity.Movement) {
	for _, m := range movements {
		if m.ItemID != itemID {
			continue
		}
		qty, err := strconv.Atoi(m.Quantity)
		if err != nil {
			skipped = append(skipped, m)
			continue
		}
		switch m.Type {
		case entity.MovementEntrada:
			total += qty
		case entity.MovementSalida:
			total -= qty
		}
	}
	return total, skipped
}

// Summary stock y costo base de un artículo derivados del kardex en una sola pasada.
type Summary struct {
	Stock    int
	LastCost decimal.Decimal // costo de la Entrada más reciente por orden del kardex
	Skipped  int
}

// Summarize recorre el kardex una sola vez y acumula por artículo el stock y el
// último costo de entrada registrado. El costo base de valuación es
// last-write-wins por orden del libro, no por comparación de timestamps;
// los costos no parseables conservan el último valor bueno.
func Summarize(movements []entity.Movement) map[string]Summary {
	out := make(map[string]Summary)
	for _, m := range movements {
		s := out[m.ItemID]
		qty, err := strconv.Atoi(m.Quantity)
		if err != nil {
			s.Skipped++
			out[m.ItemID] = s
			continue
		}
		switch m.Type {
		case entity.MovementEntrada:
			s.Stock += qty
			if cost, err := decimal.NewFromString(m.Cost); err == nil {
				s.LastCost = cost
			}
		case entity.MovementSalida:
			s.Stock -= qty
		}
		out[m.ItemID] = s
	}
	return out
}

// IsLow indica stock bajo: current ≤ minStock, frontera inclusiva.
func IsLow(current, minStock int) bool {
	return current <= minStock
}

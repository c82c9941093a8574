package orders

import (
	"github.com/shopspring/decimal"

	"github.com/Lelo88/prendas-api/internal/inventory"
)

// Límites de tramo, evaluados sobre la cantidad de una sola línea (no acumulada).
const (
	tierOneMax = 49
	tierTwoMax = 99
)

// UnitPrice elige el precio unitario según el tramo de cantidad:
// 0..49 -> precio_50_u, 50..99 -> precio_100_u, resto (>=100 o negativo) -> precio_200_u.
func UnitPrice(prenda inventory.Prenda, quantity int) decimal.Decimal {
	switch {
	case quantity >= 0 && quantity <= tierOneMax:
		return decimal.NewFromFloat(prenda.Precio50U)
	case quantity > tierOneMax && quantity <= tierTwoMax:
		return decimal.NewFromFloat(prenda.Precio100U)
	default:
		return decimal.NewFromFloat(prenda.Precio200U)
	}
}

// LineTotal es quantity * precio unitario del tramo.
func LineTotal(prenda inventory.Prenda, quantity int) decimal.Decimal {
	return UnitPrice(prenda, quantity).Mul(decimal.NewFromInt(int64(quantity)))
}

package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Lelo88/prendas-api/internal/intent"
	"github.com/Lelo88/prendas-api/internal/orders"
)

// Acciones que devuelve el dispatcher cuando la operación sale bien.
const (
	ActionOrderCreated  = "pedido_creado"
	ActionStockQueried  = "stock_consultado"
	ActionOrdersListed  = "pedidos_listados"
	ActionOrderQueried  = "pedido_consultado"
	ActionStockUpdated  = "stock_actualizado"
	placeholderCustomer = "Cliente desde IA"
)

// Result es la respuesta estructurada de un mensaje. Siempre tiene forma válida:
// una acción, un error o el eco de un intent no reconocido.
type Result struct {
	Kind   intent.Kind
	Action string
	Error  string
	// Cause es el error original; no se serializa.
	Cause error

	Order     *orders.Order
	Orders    []orders.Order
	ProductID int
	Stock     int

	// Eco para intents desconocidos.
	Label      string
	ParsedData map[string]any
}

// Failed indica si el resultado es un error.
func (result Result) Failed() bool {
	return result.Error != ""
}

// Payload arma el JSON según el tipo de resultado.
func (result Result) Payload() map[string]any {
	if result.Failed() {
		return map[string]any{"error": result.Error}
	}

	switch result.Action {
	case ActionOrderCreated, ActionOrderQueried:
		return map[string]any{"action": result.Action, "order": result.Order}
	case ActionOrdersListed:
		list := result.Orders
		if list == nil {
			list = []orders.Order{}
		}
		return map[string]any{"action": result.Action, "orders": list}
	case ActionStockQueried, ActionStockUpdated:
		return map[string]any{"action": result.Action, "product_id": result.ProductID, "stock": result.Stock}
	}

	parsed := result.ParsedData
	if parsed == nil {
		parsed = map[string]any{}
	}
	return map[string]any{"intent": result.Label, "parsed_data": parsed}
}

// MarshalJSON serializa Payload.
func (result Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(result.Payload())
}

// Summary es el texto fijo que se manda cuando no hay modelo para redactar.
func (result Result) Summary() string {
	if result.Failed() {
		return "No pude completar la operación: " + result.Error
	}

	switch result.Action {
	case ActionOrderCreated:
		return fmt.Sprintf("Pedido %d creado para %s. Total: %.2f", result.Order.OrderID, result.Order.Customer, result.Order.TotalPrice)
	case ActionOrderQueried:
		return fmt.Sprintf("Pedido %d de %s: %s. Total: %.2f", result.Order.OrderID, result.Order.Customer, describeItems(result.Order.Items), result.Order.TotalPrice)
	case ActionOrdersListed:
		if len(result.Orders) == 0 {
			return "No hay pedidos registrados."
		}
		return fmt.Sprintf("Hay %d pedidos registrados.", len(result.Orders))
	case ActionStockQueried:
		return fmt.Sprintf("El producto %d tiene %d unidades disponibles.", result.ProductID, result.Stock)
	case ActionStockUpdated:
		return fmt.Sprintf("Stock del producto %d actualizado a %d unidades.", result.ProductID, result.Stock)
	}
	return "No entendí el mensaje. Probá con algo como \"Consultar stock de id 90\"."
}

func describeItems(items []orders.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d x producto %d", item.Quantity, item.ProductID))
	}
	if len(parts) == 0 {
		return "sin líneas"
	}
	return strings.Join(parts, ", ")
}

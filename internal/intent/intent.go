package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind es el conjunto cerrado de acciones que el dispatcher sabe ejecutar.
type Kind string

const (
	KindCreateOrder Kind = "create_order"
	KindQueryStock  Kind = "query_stock"
	KindListOrders  Kind = "list_orders"
	KindOrderByID   Kind = "order_by_id"
	KindUpdateStock Kind = "update_stock"
	KindUnknown     Kind = "unknown"
)

// ErrorMissingLabel indica un JSON sin la clave "intent".
var ErrorMissingLabel = errors.New("intent label missing")

// aliases acepta las etiquetas en inglés y las originales en español.
var aliases = map[string]Kind{
	"create_order":     KindCreateOrder,
	"crear_pedido":     KindCreateOrder,
	"query_stock":      KindQueryStock,
	"consultar_stock":  KindQueryStock,
	"list_orders":      KindListOrders,
	"listar_pedidos":   KindListOrders,
	"order_by_id":      KindOrderByID,
	"consultar_pedido": KindOrderByID,
	"update_stock":     KindUpdateStock,
	"actualizar_stock": KindUpdateStock,
	"unknown":          KindUnknown,
	"desconocido":      KindUnknown,
}

// Intent es el comando estructurado que sale del clasificador.
// Los campos numéricos son nil cuando el modelo no los mandó o no son enteros.
type Intent struct {
	Kind      Kind
	Label     string
	ProductID *int
	OrderID   *int
	Quantity  *int
	Raw       map[string]any
}

// Unknown arma el intent de fallback conservando lo que haya llegado.
func Unknown(raw map[string]any) Intent {
	label := string(KindUnknown)
	if value, ok := raw["intent"].(string); ok && strings.TrimSpace(value) != "" {
		label = value
	}
	if raw == nil {
		raw = map[string]any{"intent": label}
	}
	return Intent{Kind: KindUnknown, Label: label, Raw: raw}
}

// Decode interpreta la respuesta JSON del modelo.
// Devuelve error si no es un objeto JSON o si falta "intent"; quien llama
// decide degradar a Unknown.
func Decode(payload []byte) (Intent, error) {
	decoder := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(payload)))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return Intent{}, fmt.Errorf("decode intent: %w", err)
	}
	if raw == nil {
		return Intent{}, fmt.Errorf("decode intent: not an object")
	}
	if _, ok := raw["intent"]; !ok {
		return Intent{}, ErrorMissingLabel
	}
	return FromMap(raw), nil
}

// FromMap valida la etiqueta contra la lista blanca y extrae los campos numéricos.
func FromMap(raw map[string]any) Intent {
	label, _ := raw["intent"].(string)
	label = strings.TrimSpace(label)

	kind, ok := aliases[strings.ToLower(label)]
	if !ok || kind == KindUnknown {
		return Unknown(raw)
	}

	decoded := Intent{
		Kind:      kind,
		Label:     label,
		ProductID: intField(raw, "product_id"),
		OrderID:   intField(raw, "order_id"),
		Quantity:  intField(raw, "quantity"),
		Raw:       raw,
	}
	if decoded.Quantity == nil && kind == KindUpdateStock {
		decoded.Quantity = intField(raw, "stock")
	}
	return decoded
}

func intField(raw map[string]any, key string) *int {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}

	var number float64
	switch typed := value.(type) {
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return nil
		}
		number = parsed
	case float64:
		number = typed
	case int:
		return &typed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return nil
		}
		number = parsed
	default:
		return nil
	}

	if number != math.Trunc(number) || math.Abs(number) > math.MaxInt32 {
		return nil
	}
	out := int(number)
	return &out
}

package orders

// LineItem es una línea del pedido.
type LineItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Order representa un pedido persistido. TotalPrice siempre lo calcula el servidor.
type Order struct {
	OrderID    int        `json:"order_id"`
	Customer   string     `json:"customer"`
	Items      []LineItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

// CreateOrderInput es el payload de POST /order_create.
// TotalPrice se acepta por compatibilidad pero se ignora.
type CreateOrderInput struct {
	Customer   string     `json:"customer"`
	Items      []LineItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

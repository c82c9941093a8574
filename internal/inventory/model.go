package inventory

// Prenda es una prenda vendible con stock y precios por tramo de cantidad.
// Los campos descriptivos son solo informativos.
type Prenda struct {
	ID                 int     `json:"id"`
	TipoPrenda         string  `json:"tipo_prenda"`
	Talla              string  `json:"talla"`
	Color              string  `json:"color"`
	CantidadDisponible int     `json:"cantidad_disponible"`
	Precio50U          float64 `json:"precio_50_u"`
	Precio100U         float64 `json:"precio_100_u"`
	Precio200U         float64 `json:"precio_200_u"`
	Disponible         string  `json:"disponible"`
	Categoria          string  `json:"categoria"`
	Descripcion        string  `json:"descripcion"`
}

// StockLevel es la vista reducida que exponen /inventory y el chat.
type StockLevel struct {
	ProductID int `json:"product_id"`
	Stock     int `json:"stock"`
}

// UpdateStockInput es el payload de PUT /inventory/{product_id}.
// Stock es puntero para distinguir "no enviado" de cero.
type UpdateStockInput struct {
	Stock *int `json:"stock"`
}

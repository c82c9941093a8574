package orders

import (
	"errors"
	"fmt"
)

// Errores de dominio (no HTTP). El handler y el chat los traducen.
var (
	ErrorInvalidInput      = errors.New("invalid input")
	ErrorNotFound          = errors.New("order not found")
	ErrorProductNotFound   = errors.New("not found")
	ErrorInsufficientStock = errors.New("not enough stock")
)

// LineItemError identifica la prenda que abortó el pedido.
// Envuelve ErrorProductNotFound o ErrorInsufficientStock.
type LineItemError struct {
	ProductID int
	Err       error
}

func (lineError *LineItemError) Error() string {
	return fmt.Sprintf("Product id %d %s", lineError.ProductID, lineError.Err.Error())
}

func (lineError *LineItemError) Unwrap() error {
	return lineError.Err
}

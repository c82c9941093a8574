package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/prendas-api/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	GetProduct(ctx context.Context, productID int) (Prenda, error)
	ListProducts(ctx context.Context) ([]Prenda, error)
	GetStock(ctx context.Context, productID int) (int, error)
	ListInventory(ctx context.Context) ([]StockLevel, error)
	SetStock(ctx context.Context, productID, stock int) (StockLevel, error)
}

// Handler HTTP para inventario y prendas.
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de inventario.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// GetInventory maneja GET /inventory[?product_id=].
// Con product_id devuelve un solo registro; sin él, la lista completa.
func (handler *Handler) GetInventory(writer http.ResponseWriter, request *http.Request) {
	raw := strings.TrimSpace(request.URL.Query().Get("product_id"))
	if raw == "" {
		levels, err := handler.service.ListInventory(request.Context())
		if err != nil {
			httpx.Fail(writer, request, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error")
			return
		}
		httpx.OK(writer, request, http.StatusOK, levels)
		return
	}

	productID, err := strconv.Atoi(raw)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidID, "product_id must be an integer")
		return
	}

	stock, err := handler.service.GetStock(request.Context(), productID)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, StockLevel{ProductID: productID, Stock: stock})
}

// UpdateInventory maneja PUT /inventory/{product_id}.
func (handler *Handler) UpdateInventory(writer http.ResponseWriter, request *http.Request) {
	productID, ok := productIDParam(writer, request)
	if !ok {
		return
	}

	var input UpdateStockInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidJSON, "invalid JSON body")
		return
	}
	if input.Stock == nil {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidInput, "stock is required")
		return
	}

	level, err := handler.service.SetStock(request.Context(), productID, *input.Stock)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, level)
}

// ListProducts maneja GET /products.
func (handler *Handler) ListProducts(writer http.ResponseWriter, request *http.Request) {
	prendas, err := handler.service.ListProducts(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error")
		return
	}
	httpx.OK(writer, request, http.StatusOK, prendas)
}

// GetProduct maneja GET /products/{product_id}.
func (handler *Handler) GetProduct(writer http.ResponseWriter, request *http.Request) {
	productID, ok := productIDParam(writer, request)
	if !ok {
		return
	}

	prenda, err := handler.service.GetProduct(request.Context(), productID)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	httpx.OK(writer, request, http.StatusOK, prenda)
}

func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, httpx.CodeNotFound, "Product not found")
	default:
		// No filtramos detalles internos.
		httpx.Fail(writer, request, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error")
	}
}

func productIDParam(writer http.ResponseWriter, request *http.Request) (int, bool) {
	productID, err := strconv.Atoi(chi.URLParam(request, "product_id"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidID, "product_id must be an integer")
		return 0, false
	}
	return productID, true
}

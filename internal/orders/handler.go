package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/prendas-api/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	Create(ctx context.Context, input CreateOrderInput) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, orderID int) (Order, error)
	Refresh(ctx context.Context, orderID int) (Order, error)
}

// Handler HTTP para pedidos.
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de pedidos.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// Create maneja POST /order_create.
// El total enviado por el cliente se descarta y se recalcula en el servidor.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateOrderInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidJSON, "invalid JSON body")
		return
	}

	order, err := handler.service.Create(request.Context(), input)
	if err != nil {
		var lineError *LineItemError
		switch {
		case errors.As(err, &lineError):
			// Prenda inexistente o sin stock: 404 con el id de la prenda en el mensaje.
			httpx.Fail(writer, request, http.StatusNotFound, httpx.CodeNotFound, lineError.Error())
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidInput, "order needs at least one item and every quantity must be positive")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusCreated, order)
}

// List maneja GET /orders.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	orders, err := handler.service.List(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error")
		return
	}
	httpx.OK(writer, request, http.StatusOK, orders)
}

// GetByID maneja GET /orders/{order_id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	orderID, ok := orderIDParam(writer, request)
	if !ok {
		return
	}

	order, err := handler.service.Get(request.Context(), orderID)
	if err != nil {
		failLookup(writer, request, err)
		return
	}
	httpx.OK(writer, request, http.StatusOK, order)
}

// Refresh maneja PUT /orders/{order_id}: no modifica campos, devuelve el pedido actual.
func (handler *Handler) Refresh(writer http.ResponseWriter, request *http.Request) {
	orderID, ok := orderIDParam(writer, request)
	if !ok {
		return
	}

	order, err := handler.service.Refresh(request.Context(), orderID)
	if err != nil {
		failLookup(writer, request, err)
		return
	}
	httpx.OK(writer, request, http.StatusOK, order)
}

func failLookup(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, httpx.CodeNotFound, "Order not found")
	default:
		httpx.Fail(writer, request, http.StatusInternalServerError, httpx.CodeInternal, "unexpected error")
	}
}

func orderIDParam(writer http.ResponseWriter, request *http.Request) (int, bool) {
	orderID, err := strconv.Atoi(chi.URLParam(request, "order_id"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidID, "order_id must be an integer")
		return 0, false
	}
	return orderID, true
}

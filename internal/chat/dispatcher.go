package chat

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Lelo88/prendas-api/internal/intent"
	"github.com/Lelo88/prendas-api/internal/inventory"
	"github.com/Lelo88/prendas-api/internal/orders"
)

const tracerName = "github.com/Lelo88/prendas-api/internal/chat"

// ErrorMissingParameter indica que el intent no trae un campo obligatorio.
var ErrorMissingParameter = errors.New("missing parameter")

// OrderService es lo que el dispatcher usa del motor de pedidos.
type OrderService interface {
	Create(ctx context.Context, input orders.CreateOrderInput) (orders.Order, error)
	List(ctx context.Context) ([]orders.Order, error)
	Get(ctx context.Context, orderID int) (orders.Order, error)
}

// InventoryService es lo que el dispatcher usa del inventario.
type InventoryService interface {
	GetStock(ctx context.Context, productID int) (int, error)
	SetStock(ctx context.Context, productID, stock int) (inventory.StockLevel, error)
}

// DispatchRecorder cuenta intents despachados.
type DispatchRecorder interface {
	IntentDispatched(kind, outcome string)
}

// Dispatcher enruta un intent a la operación correspondiente.
// No guarda estado entre llamadas.
type Dispatcher struct {
	orders    OrderService
	inventory InventoryService
	recorder  DispatchRecorder
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewDispatcher crea el dispatcher. recorder y logger son opcionales.
func NewDispatcher(orderService OrderService, inventoryService InventoryService, recorder DispatchRecorder, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		orders:    orderService,
		inventory: inventoryService,
		recorder:  recorder,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Dispatch ejecuta el intent. Nunca devuelve error: las fallas van en Result.Error.
func (dispatcher *Dispatcher) Dispatch(ctx context.Context, in intent.Intent) Result {
	ctx, span := dispatcher.tracer.Start(ctx, "chat.dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("intent.kind", string(in.Kind)))

	var result Result
	switch in.Kind {
	case intent.KindCreateOrder:
		result = dispatcher.createOrder(ctx, in)
	case intent.KindQueryStock:
		result = dispatcher.queryStock(ctx, in)
	case intent.KindListOrders:
		result = dispatcher.listOrders(ctx)
	case intent.KindOrderByID:
		result = dispatcher.orderByID(ctx, in)
	case intent.KindUpdateStock:
		result = dispatcher.updateStock(ctx, in)
	default:
		result = echo(in)
	}
	result.Kind = in.Kind

	outcome := "ok"
	switch {
	case result.Failed():
		outcome = "error"
		span.SetStatus(codes.Error, result.Error)
		if result.Cause != nil {
			span.RecordError(result.Cause)
		}
		dispatcher.logger.Info("intent failed",
			zap.String("kind", string(in.Kind)),
			zap.String("message", result.Error),
			zap.Error(result.Cause),
		)
	case result.Action == "":
		outcome = "echo"
	}
	if dispatcher.recorder != nil {
		dispatcher.recorder.IntentDispatched(string(in.Kind), outcome)
	}
	return result
}

func (dispatcher *Dispatcher) createOrder(ctx context.Context, in intent.Intent) Result {
	// Cero cuenta como ausente, igual que un campo vacío.
	if isZero(in.ProductID) || isZero(in.Quantity) {
		return missing("Faltan parámetros (product_id o quantity)", "product_id/quantity")
	}

	order, err := dispatcher.orders.Create(ctx, orders.CreateOrderInput{
		Customer: placeholderCustomer,
		Items:    []orders.LineItem{{ProductID: *in.ProductID, Quantity: *in.Quantity}},
	})
	if err != nil {
		var lineError *orders.LineItemError
		switch {
		case errors.As(err, &lineError):
			return Result{Error: lineError.Error(), Cause: err}
		case errors.Is(err, orders.ErrorInvalidInput):
			return Result{Error: "La cantidad debe ser mayor a cero", Cause: err}
		default:
			dispatcher.logger.Error("create order from chat", zap.Error(err))
			return Result{Error: "No se pudo crear el pedido", Cause: err}
		}
	}
	return Result{Action: ActionOrderCreated, Order: &order}
}

func (dispatcher *Dispatcher) queryStock(ctx context.Context, in intent.Intent) Result {
	if isZero(in.ProductID) {
		return missing("Falta product_id", "product_id")
	}
	productID := *in.ProductID

	stock, err := dispatcher.inventory.GetStock(ctx, productID)
	if err != nil {
		return productFailure(dispatcher.logger, productID, err)
	}
	return Result{Action: ActionStockQueried, ProductID: productID, Stock: stock}
}

func (dispatcher *Dispatcher) listOrders(ctx context.Context) Result {
	list, err := dispatcher.orders.List(ctx)
	if err != nil {
		dispatcher.logger.Error("list orders from chat", zap.Error(err))
		return Result{Error: "No se pudieron listar los pedidos", Cause: err}
	}
	return Result{Action: ActionOrdersListed, Orders: list}
}

func (dispatcher *Dispatcher) orderByID(ctx context.Context, in intent.Intent) Result {
	if isZero(in.OrderID) {
		return missing("Falta order_id", "order_id")
	}
	orderID := *in.OrderID

	order, err := dispatcher.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrorNotFound) {
			return Result{Error: fmt.Sprintf("Pedido %d no encontrado", orderID), Cause: err}
		}
		dispatcher.logger.Error("get order from chat", zap.Int("order_id", orderID), zap.Error(err))
		return Result{Error: "No se pudo consultar el pedido", Cause: err}
	}
	return Result{Action: ActionOrderQueried, Order: &order}
}

func (dispatcher *Dispatcher) updateStock(ctx context.Context, in intent.Intent) Result {
	// Stock 0 es un valor válido; solo falta si no vino.
	if isZero(in.ProductID) || in.Quantity == nil {
		return missing("Faltan parámetros (product_id o stock)", "product_id/stock")
	}
	productID := *in.ProductID

	level, err := dispatcher.inventory.SetStock(ctx, productID, *in.Quantity)
	if err != nil {
		return productFailure(dispatcher.logger, productID, err)
	}
	return Result{Action: ActionStockUpdated, ProductID: level.ProductID, Stock: level.Stock}
}

func echo(in intent.Intent) Result {
	label := in.Label
	if label == "" {
		label = string(intent.KindUnknown)
	}
	return Result{Label: label, ParsedData: in.Raw}
}

func missing(message, field string) Result {
	return Result{Error: message, Cause: fmt.Errorf("%w: %s", ErrorMissingParameter, field)}
}

func productFailure(logger *zap.Logger, productID int, err error) Result {
	if errors.Is(err, inventory.ErrorNotFound) {
		return Result{Error: fmt.Sprintf("Producto %d no encontrado", productID), Cause: err}
	}
	logger.Error("inventory operation from chat", zap.Int("product_id", productID), zap.Error(err))
	return Result{Error: "No se pudo acceder al inventario", Cause: err}
}

func isZero(value *int) bool {
	return value == nil || *value == 0
}

package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Lelo88/prendas-api/internal/inventory"
)

const tracerName = "github.com/Lelo88/prendas-api/internal/orders"

// RepositoryAPI cubre las lecturas fuera de transacción.
type RepositoryAPI interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, orderID int) (Order, error)
}

// EventPublisher recibe los pedidos ya confirmados.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order Order) error
}

// Recorder cuenta resultados de creación de pedidos.
type Recorder interface {
	OrderCreated()
	OrderRejected(reason string)
}

// Options son las dependencias opcionales del service.
type Options struct {
	Publisher EventPublisher
	Recorder  Recorder
	Tracer    trace.Tracer
	Logger    *zap.Logger
}

// Service es el motor de precios y cumplimiento de pedidos.
// Es el único componente que descuenta stock.
type Service struct {
	uow        UnitOfWork
	repository RepositoryAPI
	publisher  EventPublisher
	recorder   Recorder
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewService crea el service de pedidos.
func NewService(uow UnitOfWork, repository RepositoryAPI, options Options) *Service {
	service := &Service{
		uow:        uow,
		repository: repository,
		publisher:  options.Publisher,
		recorder:   options.Recorder,
		tracer:     options.Tracer,
		logger:     options.Logger,
	}
	if service.tracer == nil {
		service.tracer = otel.Tracer(tracerName)
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	return service
}

// Create valida, cotiza y descuenta stock línea por línea dentro de una unidad de trabajo.
// Cualquier línea inválida aborta el pedido completo y nada queda confirmado.
func (service *Service) Create(ctx context.Context, input CreateOrderInput) (Order, error) {
	ctx, span := service.tracer.Start(ctx, "orders.create")
	defer span.End()

	input.Customer = strings.TrimSpace(input.Customer)
	if len(input.Items) == 0 {
		service.reject(span, "invalid_input", ErrorInvalidInput)
		return Order{}, ErrorInvalidInput
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			service.reject(span, "invalid_input", ErrorInvalidInput)
			return Order{}, ErrorInvalidInput
		}
	}
	span.SetAttributes(attribute.Int("order.items", len(input.Items)))

	var created Order
	err := service.uow.Do(ctx, func(ctx context.Context, store Store) error {
		total := decimal.Zero

		for _, item := range input.Items {
			prenda, err := store.FindProduct(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, inventory.ErrorNotFound) {
					return &LineItemError{ProductID: item.ProductID, Err: ErrorProductNotFound}
				}
				return err
			}

			// Incluye el borde: pedir exactamente el stock restante es válido.
			if item.Quantity > prenda.CantidadDisponible {
				return &LineItemError{ProductID: item.ProductID, Err: ErrorInsufficientStock}
			}

			total = total.Add(LineTotal(prenda, item.Quantity))

			if err := store.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		items := make([]LineItem, len(input.Items))
		copy(items, input.Items)

		order, err := store.InsertOrder(ctx, Order{
			Customer:   input.Customer,
			Items:      items,
			TotalPrice: total.InexactFloat64(),
		})
		if err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		service.reject(span, rejectReason(err), err)
		return Order{}, err
	}

	span.SetAttributes(
		attribute.Int("order.id", created.OrderID),
		attribute.Float64("order.total_price", created.TotalPrice),
	)
	if service.recorder != nil {
		service.recorder.OrderCreated()
	}
	service.logger.Info("order created",
		zap.Int("order_id", created.OrderID),
		zap.String("customer", created.Customer),
		zap.Int("items", len(created.Items)),
		zap.Float64("total_price", created.TotalPrice),
	)

	// Best effort: el pedido ya está confirmado.
	if service.publisher != nil {
		if err := service.publisher.PublishOrderCreated(ctx, created); err != nil {
			service.logger.Warn("order created event not published", zap.Int("order_id", created.OrderID), zap.Error(err))
		}
	}

	return created, nil
}

// List devuelve todos los pedidos.
func (service *Service) List(ctx context.Context) ([]Order, error) {
	return service.repository.List(ctx)
}

// Get devuelve un pedido por id.
func (service *Service) Get(ctx context.Context, orderID int) (Order, error) {
	order, err := service.repository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrorNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrorNotFound
		}
		return Order{}, err
	}
	return order, nil
}

// Refresh vuelve a leer el pedido. Los pedidos son inmutables: no cambia ningún campo.
func (service *Service) Refresh(ctx context.Context, orderID int) (Order, error) {
	return service.Get(ctx, orderID)
}

func (service *Service) reject(span trace.Span, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	if service.recorder != nil {
		service.recorder.OrderRejected(reason)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrorProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrorInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}

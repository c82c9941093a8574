package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/Lelo88/prendas-api/internal/orders"
)

// OrderCreated es el evento que se publica al confirmar un pedido.
type OrderCreated struct {
	EventID    string            `json:"event_id"`
	OrderID    int               `json:"order_id"`
	Customer   string            `json:"customer"`
	Items      []orders.LineItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// MessageWriter es la parte de *kafka.Writer que usamos.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Variables para poder fijar id y reloj en tests.
var (
	newEventID = func() string { return uuid.NewString() }
	now        = func() time.Time { return time.Now().UTC() }
)

// KafkaPublisher publica eventos de pedidos en un topic.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaWriter crea el writer para el broker y topic dados.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaPublisher crea el publisher sobre un writer ya configurado.
func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishOrderCreated implementa orders.EventPublisher.
// La clave del mensaje es el order_id para mantener orden por pedido.
func (publisher *KafkaPublisher) PublishOrderCreated(ctx context.Context, order orders.Order) error {
	event := OrderCreated{
		EventID:    newEventID(),
		OrderID:    order.OrderID,
		Customer:   order.Customer,
		Items:      order.Items,
		TotalPrice: order.TotalPrice,
		OccurredAt: now(),
	}
	if event.Items == nil {
		event.Items = []orders.LineItem{}
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order created event: %w", err)
	}

	carrier := headerCarrier{{Key: "event_type", Value: []byte("order.created")}}
	otel.GetTextMapPropagator().Inject(ctx, &carrier)

	message := kafka.Message{
		Key:     []byte(strconv.Itoa(order.OrderID)),
		Value:   value,
		Headers: carrier,
		Time:    event.OccurredAt,
	}
	if err := publisher.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write order created event: %w", err)
	}
	return nil
}

// Close cierra el writer.
func (publisher *KafkaPublisher) Close() error {
	return publisher.writer.Close()
}

// headerCarrier adapta los headers de Kafka a propagation.TextMapCarrier.
type headerCarrier []kafka.Header

func (carrier *headerCarrier) Get(key string) string {
	for _, header := range *carrier {
		if header.Key == key {
			return string(header.Value)
		}
	}
	return ""
}

func (carrier *headerCarrier) Set(key, value string) {
	for i, header := range *carrier {
		if header.Key == key {
			(*carrier)[i].Value = []byte(value)
			return
		}
	}
	*carrier = append(*carrier, kafka.Header{Key: key, Value: []byte(value)})
}

func (carrier *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*carrier))
	for _, header := range *carrier {
		keys = append(keys, header.Key)
	}
	return keys
}

package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lelo88/prendas-api/internal/intent"
	"github.com/Lelo88/prendas-api/internal/orders"
)

func TestService_Handle(t *testing.T) {
	classifier := &fakeClassifier{result: intent.Intent{Kind: intent.KindCreateOrder, ProductID: intPtr(90), Quantity: intPtr(5)}}
	orderService := &fakeOrders{
		createFn: func(ctx context.Context, input orders.CreateOrderInput) (orders.Order, error) {
			return orders.Order{OrderID: 1, Customer: input.Customer, Items: input.Items, TotalPrice: 50}, nil
		},
	}
	service := NewService(classifier, NewDispatcher(orderService, &fakeInventory{}, nil, nil), &fakeResponder{}, &fakeSink{}, nil)

	result := service.Handle(context.Background(), "Crear pedido de 5 productos de id 90")

	require.Equal(t, []string{"Crear pedido de 5 productos de id 90"}, classifier.texts)
	require.Equal(t, ActionOrderCreated, result.Action)
	require.Equal(t, 50.0, result.Order.TotalPrice)
}

func TestService_Reply(t *testing.T) {
	t.Run("responder text is delivered", func(t *testing.T) {
		classifier := &fakeClassifier{result: intent.Intent{Kind: intent.KindQueryStock, ProductID: intPtr(90)}}
		responder := &fakeResponder{text: "Quedan 5 unidades del producto 90."}
		sink := &fakeSink{}
		service := NewService(classifier, NewDispatcher(&fakeOrders{}, &fakeInventory{stock: map[int]int{90: 5}}, nil, nil), responder, sink, nil)

		err := service.Reply(context.Background(), 42, "stock 90")

		require.NoError(t, err)
		require.Equal(t, []sentMessage{{chatID: 42, text: "Quedan 5 unidades del producto 90."}}, sink.sent)
		require.Equal(t, map[string]any{"action": "stock_consultado", "product_id": 90, "stock": 5}, responder.payloads[0])
		require.Equal(t, "El producto 90 tiene 5 unidades disponibles.", responder.fallbacks[0])
	})

	t.Run("dispatch errors are still answered", func(t *testing.T) {
		classifier := &fakeClassifier{result: intent.Intent{Kind: intent.KindQueryStock}}
		sink := &fakeSink{}
		service := NewService(classifier, NewDispatcher(&fakeOrders{}, &fakeInventory{}, nil, nil), &fakeResponder{}, sink, nil)

		err := service.Reply(context.Background(), 7, "stock")

		require.NoError(t, err)
		require.Equal(t, "No pude completar la operación: Falta product_id", sink.sent[0].text)
	})

	t.Run("expired request deadline still sends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		classifier := &fakeClassifier{result: intent.Unknown(nil)}
		sink := &fakeSink{}
		service := NewService(classifier, NewDispatcher(&fakeOrders{}, &fakeInventory{}, nil, nil), &fakeResponder{}, sink, nil)

		err := service.Reply(ctx, 7, "hola")

		require.NoError(t, err)
		require.Len(t, sink.sent, 1)
		require.NoError(t, sink.ctxErrs[0])
	})

	t.Run("sink failure", func(t *testing.T) {
		sinkErr := errors.New("telegram down")
		classifier := &fakeClassifier{result: intent.Unknown(nil)}
		service := NewService(classifier, NewDispatcher(&fakeOrders{}, &fakeInventory{}, nil, nil), &fakeResponder{}, &fakeSink{err: sinkErr}, nil)

		err := service.Reply(context.Background(), 7, "hola")

		require.ErrorIs(t, err, sinkErr)
	})
}

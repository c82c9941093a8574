package chat

import (
	"context"

	"github.com/Lelo88/prendas-api/internal/intent"
	"github.com/Lelo88/prendas-api/internal/inventory"
	"github.com/Lelo88/prendas-api/internal/orders"
)

type fakeOrders struct {
	createFn func(ctx context.Context, input orders.CreateOrderInput) (orders.Order, error)
	listFn   func(ctx context.Context) ([]orders.Order, error)
	getFn    func(ctx context.Context, orderID int) (orders.Order, error)

	createCalled bool
	createInput  orders.CreateOrderInput
}

func (fake *fakeOrders) Create(ctx context.Context, input orders.CreateOrderInput) (orders.Order, error) {
	fake.createCalled = true
	fake.createInput = input
	if fake.createFn != nil {
		return fake.createFn(ctx, input)
	}
	return orders.Order{OrderID: 1, Customer: input.Customer, Items: input.Items}, nil
}

func (fake *fakeOrders) List(ctx context.Context) ([]orders.Order, error) {
	if fake.listFn != nil {
		return fake.listFn(ctx)
	}
	return []orders.Order{}, nil
}

func (fake *fakeOrders) Get(ctx context.Context, orderID int) (orders.Order, error) {
	if fake.getFn != nil {
		return fake.getFn(ctx, orderID)
	}
	return orders.Order{OrderID: orderID}, nil
}

type fakeInventory struct {
	stock  map[int]int
	setErr error

	setCalled bool
}

func (fake *fakeInventory) GetStock(ctx context.Context, productID int) (int, error) {
	stock, ok := fake.stock[productID]
	if !ok {
		return 0, inventory.ErrorNotFound
	}
	return stock, nil
}

func (fake *fakeInventory) SetStock(ctx context.Context, productID, stock int) (inventory.StockLevel, error) {
	fake.setCalled = true
	if fake.setErr != nil {
		return inventory.StockLevel{}, fake.setErr
	}
	if _, ok := fake.stock[productID]; !ok {
		return inventory.StockLevel{}, inventory.ErrorNotFound
	}
	fake.stock[productID] = stock
	return inventory.StockLevel{ProductID: productID, Stock: stock}, nil
}

type dispatchCount struct {
	kind    string
	outcome string
}

type fakeRecorder struct {
	dispatched []dispatchCount
}

func (recorder *fakeRecorder) IntentDispatched(kind, outcome string) {
	recorder.dispatched = append(recorder.dispatched, dispatchCount{kind: kind, outcome: outcome})
}

type fakeClassifier struct {
	result intent.Intent
	texts  []string
}

func (classifier *fakeClassifier) Classify(ctx context.Context, text string) intent.Intent {
	classifier.texts = append(classifier.texts, text)
	return classifier.result
}

type fakeResponder struct {
	text      string
	payloads  []any
	fallbacks []string
}

func (responder *fakeResponder) Compose(ctx context.Context, payload any, fallback string) string {
	responder.payloads = append(responder.payloads, payload)
	responder.fallbacks = append(responder.fallbacks, fallback)
	if responder.text == "" {
		return fallback
	}
	return responder.text
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSink struct {
	err     error
	sent    []sentMessage
	ctxErrs []error
}

func (sink *fakeSink) SendMessage(ctx context.Context, chatID int64, text string) error {
	sink.sent = append(sink.sent, sentMessage{chatID: chatID, text: text})
	sink.ctxErrs = append(sink.ctxErrs, ctx.Err())
	return sink.err
}

func intPtr(value int) *int {
	return &value
}

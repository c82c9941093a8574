package orders

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lelo88/prendas-api/internal/inventory"
)

// memoryUnitOfWork simula la transacción: si fn falla, restaura el estado previo.
type memoryUnitOfWork struct {
	products  map[int]inventory.Prenda
	orders    []Order
	nextID    int
	insertErr error
	findErr   error

	doCalls int
}

func newMemoryUnitOfWork(prendas ...inventory.Prenda) *memoryUnitOfWork {
	products := make(map[int]inventory.Prenda, len(prendas))
	for _, prenda := range prendas {
		products[prenda.ID] = prenda
	}
	return &memoryUnitOfWork{products: products, nextID: 1}
}

func (uow *memoryUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	uow.doCalls++

	productsSnapshot := make(map[int]inventory.Prenda, len(uow.products))
	for id, prenda := range uow.products {
		productsSnapshot[id] = prenda
	}
	ordersSnapshot := len(uow.orders)
	nextIDSnapshot := uow.nextID

	if err := fn(ctx, &memoryStore{uow: uow}); err != nil {
		uow.products = productsSnapshot
		uow.orders = uow.orders[:ordersSnapshot]
		uow.nextID = nextIDSnapshot
		return err
	}
	return nil
}

func (uow *memoryUnitOfWork) stock(productID int) int {
	return uow.products[productID].CantidadDisponible
}

type memoryStore struct {
	uow *memoryUnitOfWork
}

func (store *memoryStore) FindProduct(ctx context.Context, productID int) (inventory.Prenda, error) {
	if store.uow.findErr != nil {
		return inventory.Prenda{}, store.uow.findErr
	}
	prenda, ok := store.uow.products[productID]
	if !ok {
		return inventory.Prenda{}, pgx.ErrNoRows
	}
	return prenda, nil
}

func (store *memoryStore) DecrementStock(ctx context.Context, productID, quantity int) error {
	prenda, ok := store.uow.products[productID]
	if !ok {
		return inventory.ErrorNotFound
	}
	prenda.CantidadDisponible -= quantity
	store.uow.products[productID] = prenda
	return nil
}

func (store *memoryStore) InsertOrder(ctx context.Context, order Order) (Order, error) {
	if store.uow.insertErr != nil {
		return Order{}, store.uow.insertErr
	}
	order.OrderID = store.uow.nextID
	store.uow.nextID++
	store.uow.orders = append(store.uow.orders, order)
	return order, nil
}

type fakeRepo struct {
	listCalled bool
	listErr    error
	listOrders []Order

	getCalled bool
	getID     int
	getErr    error
	getOrder  Order
}

func (fakerepo *fakeRepo) List(ctx context.Context) ([]Order, error) {
	fakerepo.listCalled = true
	if fakerepo.listErr != nil {
		return nil, fakerepo.listErr
	}
	return fakerepo.listOrders, nil
}

func (fakerepo *fakeRepo) GetByID(ctx context.Context, orderID int) (Order, error) {
	fakerepo.getCalled = true
	fakerepo.getID = orderID
	if fakerepo.getErr != nil {
		return Order{}, fakerepo.getErr
	}
	return fakerepo.getOrder, nil
}

type fakePublisher struct {
	published []Order
	err       error
}

func (publisher *fakePublisher) PublishOrderCreated(ctx context.Context, order Order) error {
	publisher.published = append(publisher.published, order)
	return publisher.err
}

type fakeRecorder struct {
	created  int
	rejected []string
}

func (recorder *fakeRecorder) OrderCreated() {
	recorder.created++
}

func (recorder *fakeRecorder) OrderRejected(reason string) {
	recorder.rejected = append(recorder.rejected, reason)
}

type fakeDB struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	lastQuery string
	lastArgs  []any
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryRowFn == nil {
		return &fakeRow{err: errors.New("unexpected QueryRow call")}
	}
	return db.queryRowFn(ctx, sql, args...)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.queryFn(ctx, sql, args...)
}

type fakeRow struct {
	values []any
	err    error
}

func (row *fakeRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	return assignValues(dest, row.values)
}

type fakeRows struct {
	rows    [][]any
	idx     int
	closed  bool
	err     error
	scanErr error
}

func (rows *fakeRows) Close()                                       { rows.closed = true }
func (rows *fakeRows) Err() error                                   { return rows.err }
func (rows *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (rows *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (rows *fakeRows) Values() ([]any, error)                       { return nil, errors.New("not implemented") }
func (rows *fakeRows) RawValues() [][]byte                          { return nil }
func (rows *fakeRows) Conn() *pgx.Conn                              { return nil }

func (rows *fakeRows) Next() bool {
	if rows.closed || rows.idx >= len(rows.rows) {
		rows.closed = true
		return false
	}
	rows.idx++
	return true
}

func (rows *fakeRows) Scan(dest ...any) error {
	if rows.scanErr != nil {
		return rows.scanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.rows[rows.idx-1])
}

func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		destValue := reflect.ValueOf(d)
		if values[i] == nil {
			destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
			continue
		}
		destValue.Elem().Set(reflect.ValueOf(values[i]).Convert(destValue.Elem().Type()))
	}
	return nil
}

package orders

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Lelo88/prendas-api/internal/db"
	"github.com/Lelo88/prendas-api/internal/inventory"
)

// Store es la vista transaccional que usa el motor de pedidos.
type Store interface {
	FindProduct(ctx context.Context, productID int) (inventory.Prenda, error)
	DecrementStock(ctx context.Context, productID, quantity int) error
	InsertOrder(ctx context.Context, order Order) (Order, error)
}

// UnitOfWork ejecuta fn con un Store cuyo trabajo se confirma o descarta entero.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// PostgresUnitOfWork abre una transacción por pedido.
type PostgresUnitOfWork struct {
	database db.Beginner
	lockRows bool
}

// NewPostgresUnitOfWork crea la unidad de trabajo sobre el pool.
// Con lockRows cada prenda se lee con SELECT ... FOR UPDATE; sin él, dos pedidos
// concurrentes pueden pasar el chequeo de stock con lecturas viejas.
func NewPostgresUnitOfWork(database db.Beginner, lockRows bool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{database: database, lockRows: lockRows}
}

// Do implementa UnitOfWork.
func (uow *PostgresUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	return db.WithTx(ctx, uow.database, func(tx pgx.Tx) error {
		return fn(ctx, &txStore{
			products: inventory.NewRepository(tx),
			orders:   NewRepository(tx),
			lockRows: uow.lockRows,
		})
	})
}

type txStore struct {
	products *inventory.Repository
	orders   *Repository
	lockRows bool
}

func (store *txStore) FindProduct(ctx context.Context, productID int) (inventory.Prenda, error) {
	return store.products.GetByID(ctx, productID, store.lockRows)
}

func (store *txStore) DecrementStock(ctx context.Context, productID, quantity int) error {
	return store.products.DecrementStock(ctx, productID, quantity)
}

func (store *txStore) InsertOrder(ctx context.Context, order Order) (Order, error) {
	return store.orders.Insert(ctx, order)
}

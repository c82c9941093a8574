package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DB es lo mínimo que el repositorio necesita (pool o transacción).
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a la tabla orders_table.
// Las líneas se guardan como JSONB en la columna items.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de pedidos.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// Insert persiste el pedido y devuelve el registro con order_id asignado por la DB.
func (repository *Repository) Insert(ctx context.Context, order Order) (Order, error) {
	const query = `
		INSERT INTO orders_table (customer, items, total_price)
		VALUES ($1, $2, $3)
		RETURNING order_id;
	`

	items, err := json.Marshal(nonNilItems(order.Items))
	if err != nil {
		return Order{}, fmt.Errorf("encode order items: %w", err)
	}

	if err := repository.database.QueryRow(ctx, query, order.Customer, items, order.TotalPrice).Scan(&order.OrderID); err != nil {
		return Order{}, err
	}
	order.Items = nonNilItems(order.Items)
	return order, nil
}

// List devuelve todos los pedidos ordenados por id.
func (repository *Repository) List(ctx context.Context) ([]Order, error) {
	const query = `SELECT order_id, customer, items, total_price FROM orders_table ORDER BY order_id`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID devuelve el pedido o ErrorNotFound.
func (repository *Repository) GetByID(ctx context.Context, orderID int) (Order, error) {
	const query = `SELECT order_id, customer, items, total_price FROM orders_table WHERE order_id = $1`

	order, err := scanOrder(repository.database.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrorNotFound
		}
		return Order{}, err
	}
	return order, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		order Order
		items []byte
	)
	if err := row.Scan(&order.OrderID, &order.Customer, &items, &order.TotalPrice); err != nil {
		return Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return Order{}, fmt.Errorf("decode items of order %d: %w", order.OrderID, err)
		}
	}
	order.Items = nonNilItems(order.Items)
	return order, nil
}

func nonNilItems(items []LineItem) []LineItem {
	if items == nil {
		return []LineItem{}
	}
	return items
}

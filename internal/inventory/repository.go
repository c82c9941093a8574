package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB es lo mínimo que el repositorio necesita.
// Lo cumplen *pgxpool.Pool y pgx.Tx, así el mismo repo sirve dentro y fuera de una transacción.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const prendaColumns = `id, COALESCE(tipo_prenda, ''), COALESCE(talla, ''), COALESCE(color, ''),
	COALESCE(cantidad_disponible, 0), COALESCE(precio_50_u, 0), COALESCE(precio_100_u, 0), COALESCE(precio_200_u, 0),
	COALESCE(disponible, ''), COALESCE(categoria, ''), COALESCE(descripcion, '')`

// Repository accede a la tabla prendas.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de prendas.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// GetByID devuelve la prenda o pgx.ErrNoRows si no existe.
// Con forUpdate la fila queda bloqueada hasta el fin de la transacción.
func (repository *Repository) GetByID(ctx context.Context, id int, forUpdate bool) (Prenda, error) {
	query := `SELECT ` + prendaColumns + ` FROM prendas WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var prenda Prenda
	err := scanPrenda(repository.database.QueryRow(ctx, query, id), &prenda)
	if err != nil {
		return Prenda{}, err
	}
	return prenda, nil
}

// List devuelve todas las prendas ordenadas por id.
func (repository *Repository) List(ctx context.Context) ([]Prenda, error) {
	query := `SELECT ` + prendaColumns + ` FROM prendas ORDER BY id`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prendas := make([]Prenda, 0)
	for rows.Next() {
		var prenda Prenda
		if err := scanPrenda(rows, &prenda); err != nil {
			return nil, err
		}
		prendas = append(prendas, prenda)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prendas, nil
}

// SetStock sobrescribe el stock sin validar el valor.
// Devuelve ErrorNotFound si la prenda no existe.
func (repository *Repository) SetStock(ctx context.Context, id, stock int) (StockLevel, error) {
	const query = `
		UPDATE prendas SET cantidad_disponible = $2
		WHERE id = $1
		RETURNING id, cantidad_disponible;
	`

	var level StockLevel
	err := repository.database.QueryRow(ctx, query, id, stock).Scan(&level.ProductID, &level.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockLevel{}, ErrorNotFound
		}
		return StockLevel{}, err
	}
	return level, nil
}

// DecrementStock descuenta quantity del stock actual.
// No valida suficiencia: eso lo hace quien llama antes de descontar.
func (repository *Repository) DecrementStock(ctx context.Context, id, quantity int) error {
	const query = `UPDATE prendas SET cantidad_disponible = cantidad_disponible - $2 WHERE id = $1`

	tag, err := repository.database.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock of product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func scanPrenda(row pgx.Row, prenda *Prenda) error {
	return row.Scan(
		&prenda.ID,
		&prenda.TipoPrenda,
		&prenda.Talla,
		&prenda.Color,
		&prenda.CantidadDisponible,
		&prenda.Precio50U,
		&prenda.Precio100U,
		&prenda.Precio200U,
		&prenda.Disponible,
		&prenda.Categoria,
		&prenda.Descripcion,
	)
}

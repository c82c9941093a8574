package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer ejecuta sentencias sin filas de resultado.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// schemaStatements crea las tablas si no existen.
// Nombres de tabla y columnas se mantienen compatibles con la base existente.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS prendas (
		id                  SERIAL PRIMARY KEY,
		tipo_prenda         TEXT,
		talla               TEXT,
		color               TEXT,
		cantidad_disponible INTEGER NOT NULL DEFAULT 0,
		precio_50_u         DOUBLE PRECISION NOT NULL DEFAULT 0,
		precio_100_u        DOUBLE PRECISION NOT NULL DEFAULT 0,
		precio_200_u        DOUBLE PRECISION NOT NULL DEFAULT 0,
		disponible          TEXT,
		categoria           TEXT,
		descripcion         TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS orders_table (
		order_id    SERIAL PRIMARY KEY,
		customer    TEXT NOT NULL,
		items       JSONB NOT NULL DEFAULT '[]'::jsonb,
		total_price DOUBLE PRECISION NOT NULL DEFAULT 0
	);`,
}

// EnsureSchema crea el esquema mínimo que necesita la API.
func EnsureSchema(ctx context.Context, database Execer) error {
	for _, statement := range schemaStatements {
		if _, err := database.Exec(ctx, statement); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

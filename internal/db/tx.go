package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner abre transacciones. Lo implementan *pgxpool.Pool y pgx.Tx.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx ejecuta fn dentro de una transacción.
// Si fn devuelve error (o entra en pánico) se hace rollback; si no, commit.
// El rollback diferido después de un commit exitoso es un no-op en pgx.
func WithTx(ctx context.Context, database Beginner, fn func(tx pgx.Tx) error) error {
	tx, err := database.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

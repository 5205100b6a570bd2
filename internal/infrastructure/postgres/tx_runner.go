package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.SaleTxRunner.
var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia la transacción de emisión, ejecuta fn con los repositorios de
// órdenes y contadores atados a la tx y hace Commit o Rollback. El bloqueo de
// fila que toma GetForAllocation vive hasta el cierre de esta transacción.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	orders repository.SaleOrderRepository,
	counters repository.SalePointDocumentTypeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orders := NewSaleOrderRepository(tx)
	counters := NewSalePointDocumentTypeRepository(tx)

	if err := fn(orders, counters); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

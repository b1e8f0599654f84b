package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chubrika/wineo-admin/internal/application/usecase"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

var _ usecase.TaxonomyTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTaxonomy inicia una transacción, ejecuta fn con los repos de categorías y filtros
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunTaxonomy(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	filters repository.FilterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoryRepository(tx), NewFilterRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

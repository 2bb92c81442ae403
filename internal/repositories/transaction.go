package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// TxManager открывает транзакции на пуле. Правки заявок идут в READ COMMITTED:
// чтение строки и UPDATE выполняются в одной транзакции под FOR UPDATE.
type TxManager struct {
	pool    *pgxpool.Pool
	options pgx.TxOptions
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{
		pool:    pool,
		options: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
	}
}

// RunInTransaction фиксирует транзакцию, если fn вернул nil, иначе откатывает.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := pgx.BeginTxFunc(ctx, m.pool, m.options, fn); err != nil {
		return fmt.Errorf("транзакция заявки: %w", err)
	}
	return nil
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner bordro üretimi ve eğitim kaydı gibi çok tablolu yazmaları tek işlemde yürütür.
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxRunner READ COMMITTED yalıtımıyla çalışan runner döner. Dönem başına tekillik
// UNIQUE kısıtlarıyla korunduğu için daha yüksek yalıtım gerekmez.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// RunInTx fn'e işleme bağlı bir Store verir. fn hata dönerse işlem geri alınır ve
// hata olduğu gibi döner; böylece çağıran domain hatalarını errors.Is ile ayırt edebilir.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return pgx.BeginTxFunc(ctx, r.pool, r.opts, func(tx pgx.Tx) error {
		return fn(ctx, NewStore(tx))
	})
}

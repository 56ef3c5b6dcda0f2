package mongodb

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner replica set üzerinde oturum işlemi (session transaction) kullanır.
// Standalone sunucuda fn işlemsiz çalışır.
type TxRunner struct {
	client *mongo.Client
	store  repository.Store

	once      sync.Once
	supported bool
}

// NewTxRunner runner'ı istemci ve veritabanıyla kurar.
func NewTxRunner(client *mongo.Client, db *mongo.Database) *TxRunner {
	return &TxRunner{client: client, store: NewStore(db)}
}

// RunInTx fn'i işlem içinde çalıştırır. Oturum bağlamı ctx olarak aktarılır;
// repolar bu ctx ile çağrıldığında işlemin parçası olur.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	r.once.Do(func() { r.supported = supportsTransactions(ctx, r.client) })
	if !r.supported {
		return fn(ctx, r.store)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, r.store)
	})
	return err
}

//go:build integration

package mongodb

// Çalıştırmak için: go test -tags=integration ./internal/infrastructure/mongodb -count=1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/jhoicas/ik-portal/internal/infrastructure/storetest"
	"github.com/jhoicas/ik-portal/pkg/config"
)

// Tek üyeli replica set ile başlatılır; böylece TxRunner gerçek oturum işlemi kullanır.
func TestMongoStore_Contract(t *testing.T) {
	ctx := context.Background()

	c, err := tcmongo.Run(ctx, "mongo:7", tcmongo.WithReplicaSet("rs0"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	uri, err := c.ConnectionString(ctx)
	require.NoError(t, err)

	client, db, err := Open(ctx, config.MongoConfig{URI: uri, Database: "ik_portal_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	tx := NewTxRunner(client, db)
	require.True(t, supportsTransactions(ctx, client))

	storetest.Run(t, NewStore(db), tx)
}

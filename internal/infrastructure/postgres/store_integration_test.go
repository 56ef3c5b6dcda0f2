//go:build integration

package postgres

// Çalıştırmak için: go test -tags=integration ./internal/infrastructure/postgres -count=1

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/ik-portal/internal/infrastructure/storetest"
)

// Gerçek PostgreSQL ayağa kaldırılır, şema uygulanır ve ortak depo senaryoları koşturulur.
func TestPostgresStore_Contract(t *testing.T) {
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "ik",
			"POSTGRES_PASSWORD": "ik",
			"POSTGRES_DB":       "ik_portal",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://ik:ik@%s:%s/ik_portal?sslmode=disable", host, port.Port())
	pool, err := NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.NotEmpty(t, applied)

	again, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again, "uygulanmış göç tekrar çalışmaz")

	storetest.Run(t, NewStore(pool), NewTxRunner(pool))
}

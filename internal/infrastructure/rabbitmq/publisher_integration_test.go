//go:build integration

package rabbitmq

// Çalıştırmak için: go test -tags=integration ./internal/infrastructure/rabbitmq -count=1

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// Gerçek RabbitMQ ayağa kaldırılır, Publisher ile yazılır, Consumer ile okunur.
func TestRabbitMQ_PublishAndConsume(t *testing.T) {
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "rabbitmq:3.13",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	uri := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
	queue := "ik.notifications.test"

	pub, err := NewPublisher(uri, queue)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	cons, err := NewConsumer(uri, queue, 10, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cons.Close() })

	got := make(chan dto.NotificationEvent, 1)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go cons.Run(runCtx, func(ev dto.NotificationEvent) { got <- ev })

	n := &entity.Notification{
		ID: "n-1", CompanyID: "c-1", UserID: "u-1", Type: entity.NotificationLeave,
		Title: "İzin talebiniz onaylandı", Message: "12.05.2025 - 16.05.2025", CreatedAt: time.Now(),
	}
	require.NoError(t, pub.Publish(ctx, n))

	select {
	case ev := <-got:
		assert.Equal(t, "n-1", ev.ID)
		assert.Equal(t, "u-1", ev.UserID)
		assert.Equal(t, "İzin talebiniz onaylandı", ev.Title)
	case <-time.After(10 * time.Second):
		t.Fatal("mesaj beklenirken zaman aşımı")
	}
}

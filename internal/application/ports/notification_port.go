package ports

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// NotificationPublisher oluşturulan bildirimleri anlık iletim için kuyruğa yayımlar.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *entity.Notification) error
}

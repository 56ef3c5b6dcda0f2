package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// NotificationRepository kullanıcı bildirimleri için kalıcılık portu.
// Tüm okuma/yazma işlemleri userID ile kapsamlanır.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, f NotificationFilter) ([]*entity.Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

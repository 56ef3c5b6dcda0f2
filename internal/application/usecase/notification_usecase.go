package usecase

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// NotificationUseCase kullanıcının kendi bildirimleri. Tüm işlemler actor.UserID ile kapsamlanır.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase kurucu.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List kullanıcının bildirimleri, en yenisi önce.
func (uc *NotificationUseCase) List(ctx context.Context, a Actor, q dto.NotificationQuery) (*dto.ListResponse[*entity.Notification], error) {
	p := normalized(q.PageRequest)
	list, total, err := uc.repo.List(ctx, repository.NotificationFilter{Page: toPage(p), UserID: a.UserID, UnreadOnly: q.UnreadOnly})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// MarkRead tek bildirimi okundu yapar.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, a Actor, id string) error {
	ok, err := uc.repo.MarkRead(ctx, a.UserID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead tüm okunmamışları işaretler.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, a Actor) (*dto.MarkAllReadResponse, error) {
	n, err := uc.repo.MarkAllRead(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: n}, nil
}

// Delete bildirimi siler.
func (uc *NotificationUseCase) Delete(ctx context.Context, a Actor, id string) error {
	ok, err := uc.repo.Delete(ctx, a.UserID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// UnreadCount okunmamış bildirim sayısı.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, a Actor) (*dto.UnreadCountResponse, error) {
	n, err := uc.repo.CountUnread(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: n}, nil
}

package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

// Notifier bildirimi kaydeder ve yayıncıya iletir. Hatalar yalnızca loglanır.
type Notifier struct {
	repo      repository.NotificationRepository
	users     repository.UserRepository
	publisher ports.NotificationPublisher
	log       *logger.Logger
}

// NewNotifier bildirim servisini kurar. publisher nil olabilir.
func NewNotifier(repo repository.NotificationRepository, users repository.UserRepository, publisher ports.NotificationPublisher, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{repo: repo, users: users, publisher: publisher, log: log.Component("notifier")}
}

// Notify tek kullanıcıya bildirim gönderir. n.UserID boşsa bir şey yapmaz.
func (s *Notifier) Notify(ctx context.Context, n entity.Notification) {
	if s == nil || n.UserID == "" {
		return
	}
	n.ID = uuid.New().String()
	n.IsRead = false
	n.CreatedAt = now()
	if err := s.repo.Create(ctx, &n); err != nil {
		s.log.Tenant(n.CompanyID, n.UserID).Warn().Err(err).Msg("bildirim kaydedilemedi")
		return
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, &n); err != nil {
		s.log.Warn().Err(err).Str("notification_id", n.ID).Msg("bildirim kuyruğa yayımlanamadı")
	}
}

// NotifyRoles şirketteki verilen rollere sahip tüm aktif kullanıcılara bildirim gönderir.
// exceptUserID alıcılardan çıkarılır.
func (s *Notifier) NotifyRoles(ctx context.Context, companyID string, roles []string, exceptUserID string, n entity.Notification) {
	if s == nil {
		return
	}
	users, err := s.users.ListByRoles(ctx, companyID, roles)
	if err != nil {
		s.log.Tenant(companyID, "").Warn().Err(err).Msg("bildirim alıcıları okunamadı")
		return
	}
	for _, u := range users {
		if u.ID == exceptUserID || u.Status != entity.UserActive {
			continue
		}
		msg := n
		msg.CompanyID = companyID
		msg.UserID = u.ID
		s.Notify(ctx, msg)
	}
}

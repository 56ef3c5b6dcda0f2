package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

// Recorder değişiklikleri denetim kaydına ve aktivite akışına yazar.
// Yazma hataları isteği bozmaz, uyarı olarak loglanır.
type Recorder struct {
	audit      repository.AuditLogRepository
	activities repository.ActivityRepository
	users      repository.UserRepository
	log        *logger.Logger
}

// NewRecorder kaydediciyi kurar.
func NewRecorder(audit repository.AuditLogRepository, activities repository.ActivityRepository, users repository.UserRepository, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{audit: audit, activities: activities, users: users, log: log.Component("audit")}
}

// Event tek bir iş olayı. Description boşsa aktivite yazılmaz.
type Event struct {
	Action      string
	EntityType  string
	EntityID    string
	Changes     map[string]any
	Description string // ör. "izin talebi oluşturdu"
}

// Record olayı yazar.
func (r *Recorder) Record(ctx context.Context, a Actor, ev Event) {
	if r == nil {
		return
	}
	ts := now()
	log := &entity.AuditLog{
		ID:         uuid.New().String(),
		CompanyID:  a.CompanyID,
		UserID:     a.UserID,
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Changes:    ev.Changes,
		IPAddress:  a.IP,
		UserAgent:  a.UserAgent,
		CreatedAt:  ts,
	}
	if err := r.audit.Create(ctx, log); err != nil {
		r.log.Tenant(a.CompanyID, a.UserID).Warn().Err(err).Str("action", ev.Action).Str("entity", ev.EntityType).Msg("denetim kaydı yazılamadı")
	}

	if ev.Description == "" || r.activities == nil {
		return
	}
	name := r.actorName(ctx, a.UserID)
	act := &entity.Activity{
		ID:          uuid.New().String(),
		CompanyID:   a.CompanyID,
		UserID:      a.UserID,
		ActorName:   name,
		Action:      ev.Action,
		EntityType:  ev.EntityType,
		EntityID:    ev.EntityID,
		Description: strings.TrimSpace(name + " " + ev.Description),
		CreatedAt:   ts,
	}
	if err := r.activities.Create(ctx, act); err != nil {
		r.log.Tenant(a.CompanyID, a.UserID).Warn().Err(err).Str("action", ev.Action).Msg("aktivite yazılamadı")
	}
}

func (r *Recorder) actorName(ctx context.Context, userID string) string {
	if userID == "" || r.users == nil {
		return "Sistem"
	}
	u, err := r.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return "Bilinmeyen kullanıcı"
	}
	return u.Name
}

// diff eski ve yeni değerleri {alan: {old, new}} biçiminde toplar.
type diff map[string]any

func (d diff) add(field string, before, after any) {
	if before == after {
		return
	}
	d[field] = map[string]any{"old": before, "new": after}
}

package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// AuditUseCase denetim kayıtları ve aktivite akışı (salt okunur).
type AuditUseCase struct {
	audit      repository.AuditLogRepository
	activities repository.ActivityRepository
}

// NewAuditUseCase kurucu.
func NewAuditUseCase(audit repository.AuditLogRepository, activities repository.ActivityRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit, activities: activities}
}

// List filtrelenmiş denetim kayıtları. to günü sonuna kadar dahildir.
func (uc *AuditUseCase) List(ctx context.Context, a Actor, q dto.AuditQuery) (*dto.ListResponse[*entity.AuditLog], error) {
	if !a.Can(entity.PermAuditRead) {
		return nil, domain.ErrForbidden
	}
	from, err := parseOptionalDate("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", q.To)
	if err != nil {
		return nil, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Microsecond)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, invalid("başlangıç tarihi bitişten sonra olamaz")
	}
	p := normalized(q.PageRequest)
	list, total, err := uc.audit.List(ctx, repository.AuditFilter{
		Page:       toPage(p),
		CompanyID:  a.CompanyID,
		UserID:     q.UserID,
		Action:     q.Action,
		EntityType: q.EntityType,
		EntityID:   q.EntityID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// Activities şirketin son aktiviteleri.
func (uc *AuditUseCase) Activities(ctx context.Context, a Actor, limit int) ([]*entity.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return uc.activities.ListRecent(ctx, a.CompanyID, limit)
}

package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// AuditLogRepository yalnızca ekleme yapılabilen denetim kaydı portu.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]*entity.AuditLog, int, error)
}

// ActivityRepository aktivite akışı portu.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	ListRecent(ctx context.Context, companyID string, limit int) ([]*entity.Activity, error)
}

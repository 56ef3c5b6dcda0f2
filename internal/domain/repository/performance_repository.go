package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// PerformanceRepository performans değerlendirmeleri için kalıcılık portu.
type PerformanceRepository interface {
	Create(ctx context.Context, p *entity.Performance) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Performance, error)
	Update(ctx context.Context, p *entity.Performance) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f PerformanceFilter) ([]*entity.Performance, int, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]*entity.Performance, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// LeaveRepository Leave için kalıcılık portu.
type LeaveRepository interface {
	Create(ctx context.Context, l *entity.Leave) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Leave, error)
	Update(ctx context.Context, l *entity.Leave) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f LeaveFilter) ([]*entity.Leave, int, error)
	// HasOverlap bekleyen ya da onaylı bir izinle [start, end] kesişiyorsa true.
	// excludeID güncellenen iznin kendisini hariç tutmak için kullanılır.
	HasOverlap(ctx context.Context, companyID, employeeID string, start, end time.Time, excludeID string) (bool, error)
	// SumDays verilen yıl içinde başlayan, verilen tür ve durumlardaki izin günlerini toplar.
	SumDays(ctx context.Context, companyID, employeeID, leaveType string, year int, statuses []string) (int, error)
}

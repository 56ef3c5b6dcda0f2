package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// EmployeeRepository Employee için kalıcılık portu.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error)
	GetByUserID(ctx context.Context, companyID, userID string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f EmployeeFilter) ([]*entity.Employee, int, error)
	ListActive(ctx context.Context, companyID string) ([]*entity.Employee, error)
	CountByDepartment(ctx context.Context, companyID, departmentID string) (int, error)
}

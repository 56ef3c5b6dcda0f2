package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// DepartmentRepository Department için kalıcılık portu.
type DepartmentRepository interface {
	Create(ctx context.Context, d *entity.Department) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Department, error)
	Update(ctx context.Context, d *entity.Department) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, page Page) ([]*entity.Department, int, error)
}

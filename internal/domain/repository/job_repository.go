package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// JobRepository iş ilanları için kalıcılık portu.
type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Job, error)
	// GetPublic şirket kapsamı olmadan ilanı getirir (herkese açık başvuru sayfası).
	GetPublic(ctx context.Context, id string) (*entity.Job, error)
	Update(ctx context.Context, j *entity.Job) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f JobFilter) ([]*entity.Job, int, error)
}

// ApplicationRepository iş başvuruları için kalıcılık portu.
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.JobApplication) error
	GetByID(ctx context.Context, companyID, id string) (*entity.JobApplication, error)
	Update(ctx context.Context, a *entity.JobApplication) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f ApplicationFilter) ([]*entity.JobApplication, int, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// UserRepository User için kalıcılık portu. E-posta sistem genelinde tekildir.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	ListByCompany(ctx context.Context, companyID string, page Page) ([]*entity.User, int, error)
	// ListByRoles bildirim alıcılarını bulmak için kullanılır.
	ListByRoles(ctx context.Context, companyID string, roles []string) ([]*entity.User, error)
	Delete(ctx context.Context, companyID, id string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// SettingRepository şirket ayarları portu. (company_id, key) tekildir.
type SettingRepository interface {
	Get(ctx context.Context, companyID, key string) (*entity.SystemSetting, error)
	List(ctx context.Context, companyID, category string) ([]*entity.SystemSetting, error)
	Upsert(ctx context.Context, s *entity.SystemSetting) error
	Delete(ctx context.Context, companyID, key string) (bool, error)
}

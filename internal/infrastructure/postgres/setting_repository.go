package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo SettingRepository portunun PostgreSQL uygulaması.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository ayar adaptörünü kurar.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

const settingColumns = `id, company_id, key, value, category, description, updated_by, updated_at`

func scanSetting(row pgx.Row) (*entity.SystemSetting, error) {
	var s entity.SystemSetting
	if err := row.Scan(&s.ID, &s.CompanyID, &s.Key, &s.Value, &s.Category, &s.Description,
		&s.UpdatedBy, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepo) Get(ctx context.Context, companyID, key string) (*entity.SystemSetting, error) {
	s, err := scanSetting(r.q.QueryRow(ctx,
		`SELECT `+settingColumns+` FROM system_settings WHERE company_id = $1 AND key = $2`, companyID, key))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return s, nil
}

// List kategori boşsa tüm ayarları döner.
func (r *SettingRepo) List(ctx context.Context, companyID, category string) ([]*entity.SystemSetting, error) {
	w := &where{}
	w.add("company_id = ?", companyID)
	if category != "" {
		w.add("category = ?", category)
	}
	rows, err := r.q.Query(ctx, `SELECT `+settingColumns+` FROM system_settings`+w.sql()+` ORDER BY key`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var list []*entity.SystemSetting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SettingRepo) Upsert(ctx context.Context, s *entity.SystemSetting) error {
	const query = `
		INSERT INTO system_settings (id, company_id, key, value, category, description, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, key) DO UPDATE
		   SET value = EXCLUDED.value,
		       category = EXCLUDED.category,
		       description = EXCLUDED.description,
		       updated_by = EXCLUDED.updated_by,
		       updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.Key, s.Value, s.Category, s.Description, s.UpdatedBy, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

func (r *SettingRepo) Delete(ctx context.Context, companyID, key string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM system_settings WHERE company_id = $1 AND key = $2`, companyID, key)
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

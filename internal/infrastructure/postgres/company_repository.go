package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo CompanyRepository portunun PostgreSQL uygulaması.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository şirketler için kalıcılık adaptörünü kurar.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, tax_number, tax_office, address, phone, email, status, created_at, updated_at`

func scanCompany(row pgx.Row, extra ...any) (*entity.Company, error) {
	var c entity.Company
	dest := append([]any{
		&c.ID, &c.Name, &c.TaxNumber, &c.TaxOffice, &c.Address, &c.Phone, &c.Email, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create yeni şirketi kaydeder. Aynı vergi numarası domain.ErrDuplicate döner.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.TaxNumber, company.TaxOffice, company.Address,
		company.Phone, company.Email, company.Status, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID şirketi ID ile getirir; yoksa nil, nil.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByTaxNumber şirketi VKN ile getirir.
func (r *CompanyRepo) GetByTaxNumber(ctx context.Context, taxNumber string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE tax_number = $1`, taxNumber))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by tax number: %w", err)
	}
	return c, nil
}

// Update şirketi günceller.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		   SET name = $2, tax_number = $3, tax_office = $4, address = $5, phone = $6,
		       email = $7, status = $8, updated_at = $9
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.TaxNumber, company.TaxOffice, company.Address,
		company.Phone, company.Email, company.Status, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List şirketleri sayfalı listeler ve toplam kayıt sayısını döner.
func (r *CompanyRepo) List(ctx context.Context, page repository.Page) ([]*entity.Company, int, error) {
	query := `SELECT ` + companyColumns + `, COUNT(*) OVER() FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Company
		total int
	)
	for rows.Next() {
		c, err := scanCompany(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Delete şirketi siler; bağlı kayıtlar CASCADE ile silinir.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListModules şirketin tüm modül kayıtlarını döner.
func (r *CompanyRepo) ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error) {
	const query = `
		SELECT id, company_id, module_name, is_active, activated_at, expires_at, created_at, updated_at
		  FROM company_modules WHERE company_id = $1 ORDER BY module_name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyModule
	for rows.Next() {
		var m entity.CompanyModule
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ModuleName, &m.IsActive, &m.ActivatedAt,
			&m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpsertModule (company_id, module_name) çiftine göre ekler ya da günceller.
func (r *CompanyRepo) UpsertModule(ctx context.Context, m *entity.CompanyModule) error {
	const query = `
		INSERT INTO company_modules (id, company_id, module_name, is_active, activated_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, module_name) DO UPDATE
		   SET is_active = EXCLUDED.is_active,
		       activated_at = EXCLUDED.activated_at,
		       expires_at = EXCLUDED.expires_at,
		       updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.CompanyID, m.ModuleName, m.IsActive, m.ActivatedAt, m.ExpiresAt, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert module %s: %w", m.ModuleName, err)
	}
	return nil
}

// HasActiveModule modülün aktif ve süresinin dolmamış olup olmadığını döner.
func (r *CompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM company_modules
			 WHERE company_id  = $1
			   AND module_name = $2
			   AND is_active   = true
			   AND (expires_at IS NULL OR expires_at > now())
		)`
	var active bool
	if err := r.q.QueryRow(ctx, query, companyID, moduleName).Scan(&active); err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleName, err)
	}
	return active, nil
}

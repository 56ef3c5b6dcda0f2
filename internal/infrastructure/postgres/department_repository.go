package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo DepartmentRepository portunun PostgreSQL uygulaması.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository departmanlar için adaptörü kurar.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

const departmentColumns = `id, company_id, name, code, description, parent_id, manager_id, created_at, updated_at`

func scanDepartment(row pgx.Row, extra ...any) (*entity.Department, error) {
	var d entity.Department
	dest := append([]any{
		&d.ID, &d.CompanyID, &d.Name, &d.Code, &d.Description, &d.ParentID, &d.ManagerID,
		&d.CreatedAt, &d.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	query := `INSERT INTO departments (` + departmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, d.Name, d.Code, d.Description, d.ParentID, d.ManagerID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

func (r *DepartmentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Department, error) {
	d, err := scanDepartment(r.q.QueryRow(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	query := `
		UPDATE departments
		   SET name = $3, code = $4, description = $5, parent_id = $6, manager_id = $7, updated_at = $8
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		d.CompanyID, d.ID, d.Name, d.Code, d.Description, d.ParentID, d.ManagerID, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update department: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM departments WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List departmanları ada göre sıralı döner.
func (r *DepartmentRepo) List(ctx context.Context, companyID string, page repository.Page) ([]*entity.Department, int, error) {
	query := `SELECT ` + departmentColumns + `, COUNT(*) OVER() FROM departments
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Department
		total int
	)
	for rows.Next() {
		d, err := scanDepartment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

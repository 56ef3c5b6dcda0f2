package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo EmployeeRepository portunun PostgreSQL uygulaması.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository personel adaptörünü kurar.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, company_id, department_id, user_id, employee_number, first_name, last_name,
	national_id, email, phone, position, hire_date, birth_date, employment_type, status, salary, iban,
	address, emergency_contact_name, emergency_contact_phone, termination_date, created_at, updated_at`

func scanEmployee(row pgx.Row, extra ...any) (*entity.Employee, error) {
	var e entity.Employee
	dest := append([]any{
		&e.ID, &e.CompanyID, &e.DepartmentID, &e.UserID, &e.EmployeeNumber, &e.FirstName, &e.LastName,
		&e.NationalID, &e.Email, &e.Phone, &e.Position, &e.HireDate, &e.BirthDate, &e.EmploymentType,
		&e.Status, &e.Salary, &e.IBAN, &e.Address, &e.EmergencyContactName, &e.EmergencyContactPhone,
		&e.TerminationDate, &e.CreatedAt, &e.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create personeli kaydeder. Sicil no ya da TCKN şirket içinde tekrar ederse domain.ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.DepartmentID, e.UserID, e.EmployeeNumber, e.FirstName, e.LastName,
		e.NationalID, e.Email, e.Phone, e.Position, e.HireDate, e.BirthDate, e.EmploymentType,
		e.Status, e.Salary, e.IBAN, e.Address, e.EmergencyContactName, e.EmergencyContactPhone,
		e.TerminationDate, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByUserID(ctx context.Context, companyID, userID string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND user_id = $2`, companyID, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by user: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees
		   SET department_id = $3, user_id = $4, employee_number = $5, first_name = $6, last_name = $7,
		       national_id = $8, email = $9, phone = $10, position = $11, hire_date = $12, birth_date = $13,
		       employment_type = $14, status = $15, salary = $16, iban = $17, address = $18,
		       emergency_contact_name = $19, emergency_contact_phone = $20, termination_date = $21,
		       updated_at = $22
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		e.CompanyID, e.ID, e.DepartmentID, e.UserID, e.EmployeeNumber, e.FirstName, e.LastName,
		e.NationalID, e.Email, e.Phone, e.Position, e.HireDate, e.BirthDate, e.EmploymentType,
		e.Status, e.Salary, e.IBAN, e.Address, e.EmergencyContactName, e.EmergencyContactPhone,
		e.TerminationDate, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete personeli siler; bordrosu varsa domain.ErrConflict döner.
func (r *EmployeeRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtrelere göre personeli soyad/ad sırasıyla döner.
func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.DepartmentID != "" {
		w.add("department_id = ?", f.DepartmentID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Search != "" {
		w.add(`(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR employee_number ILIKE ?
			OR (first_name || ' ' || last_name) ILIKE ?)`, "%"+f.Search+"%")
	}
	query := `SELECT ` + employeeColumns + `, COUNT(*) OVER() FROM employees` + w.sql() +
		` ORDER BY last_name, first_name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Employee
		total int
	)
	for rows.Next() {
		e, err := scanEmployee(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// ListActive bordro üretimi için aktif ve izindeki personeli döner.
func (r *EmployeeRepo) ListActive(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE company_id = $1 AND status IN ('active', 'on_leave') ORDER BY employee_number`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EmployeeRepo) CountByDepartment(ctx context.Context, companyID, departmentID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE company_id = $1 AND department_id = $2 AND status <> 'terminated'`,
		companyID, departmentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count employees by department: %w", err)
	}
	return n, nil
}

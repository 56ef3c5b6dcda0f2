package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo PayrollRepository portunun PostgreSQL uygulaması.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository bordro adaptörünü kurar.
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

const payrollColumns = `id, company_id, employee_id, year, month, base_salary, overtime, bonus, allowances,
	gross, sgk_base, sgk_employee, unemployment_employee, income_tax_base, cumulative_tax_base, income_tax,
	stamp_tax, income_tax_exemption, stamp_tax_exemption, other_deductions, total_deductions, net,
	sgk_employer, unemployment_employer, employer_cost, status, notes, approved_by, approved_at, paid_at,
	created_at, updated_at`

func payrollFields(p *entity.Payroll) []any {
	return []any{
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.Year, &p.Month, &p.BaseSalary, &p.Overtime, &p.Bonus,
		&p.Allowances, &p.Gross, &p.SGKBase, &p.SGKEmployee, &p.UnemploymentEmployee, &p.IncomeTaxBase,
		&p.CumulativeTaxBase, &p.IncomeTax, &p.StampTax, &p.IncomeTaxExemption, &p.StampTaxExemption,
		&p.OtherDeductions, &p.TotalDeductions, &p.Net, &p.SGKEmployer, &p.UnemploymentEmployer,
		&p.EmployerCost, &p.Status, &p.Notes, &p.ApprovedBy, &p.ApprovedAt, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func scanPayroll(row pgx.Row, extra ...any) (*entity.Payroll, error) {
	var p entity.Payroll
	if err := row.Scan(append(payrollFields(&p), extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// payrollArgs INSERT için değerleri payrollColumns sırasıyla döner.
func payrollArgs(p *entity.Payroll) []any {
	return []any{
		p.ID, p.CompanyID, p.EmployeeID, p.Year, p.Month, p.BaseSalary, p.Overtime, p.Bonus,
		p.Allowances, p.Gross, p.SGKBase, p.SGKEmployee, p.UnemploymentEmployee, p.IncomeTaxBase,
		p.CumulativeTaxBase, p.IncomeTax, p.StampTax, p.IncomeTaxExemption, p.StampTaxExemption,
		p.OtherDeductions, p.TotalDeductions, p.Net, p.SGKEmployer, p.UnemploymentEmployer,
		p.EmployerCost, p.Status, p.Notes, p.ApprovedBy, p.ApprovedAt, p.PaidAt,
		p.CreatedAt, p.UpdatedAt,
	}
}

// Create bordroyu kaydeder. Aynı personel ve dönem için ikinci kayıt domain.ErrDuplicate döner.
func (r *PayrollRepo) Create(ctx context.Context, p *entity.Payroll) error {
	query := `INSERT INTO payrolls (` + payrollColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`
	if _, err := r.q.Exec(ctx, query, payrollArgs(p)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payroll: %w", err)
	}
	return nil
}

func (r *PayrollRepo) CreateIfAbsent(ctx context.Context, p *entity.Payroll) (bool, error) {
	query := `INSERT INTO payrolls (` + payrollColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
		ON CONFLICT (company_id, employee_id, year, month) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, payrollArgs(p)...)
	if err != nil {
		return false, fmt.Errorf("insert payroll: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PayrollRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Payroll, error) {
	p, err := scanPayroll(r.q.QueryRow(ctx,
		`SELECT `+payrollColumns+` FROM payrolls WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll: %w", err)
	}
	return p, nil
}

func (r *PayrollRepo) GetByPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*entity.Payroll, error) {
	p, err := scanPayroll(r.q.QueryRow(ctx,
		`SELECT `+payrollColumns+` FROM payrolls
		  WHERE company_id = $1 AND employee_id = $2 AND year = $3 AND month = $4`,
		companyID, employeeID, year, month))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll by period: %w", err)
	}
	return p, nil
}

// Update hesaplanan tutarlar dahil tüm alanları günceller.
func (r *PayrollRepo) Update(ctx context.Context, p *entity.Payroll) error {
	query := `
		UPDATE payrolls
		   SET base_salary = $3, overtime = $4, bonus = $5, allowances = $6, gross = $7, sgk_base = $8,
		       sgk_employee = $9, unemployment_employee = $10, income_tax_base = $11,
		       cumulative_tax_base = $12, income_tax = $13, stamp_tax = $14, income_tax_exemption = $15,
		       stamp_tax_exemption = $16, other_deductions = $17, total_deductions = $18, net = $19,
		       sgk_employer = $20, unemployment_employer = $21, employer_cost = $22, status = $23,
		       notes = $24, approved_by = $25, approved_at = $26, paid_at = $27, updated_at = $28
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, p.BaseSalary, p.Overtime, p.Bonus, p.Allowances, p.Gross, p.SGKBase,
		p.SGKEmployee, p.UnemploymentEmployee, p.IncomeTaxBase, p.CumulativeTaxBase, p.IncomeTax,
		p.StampTax, p.IncomeTaxExemption, p.StampTaxExemption, p.OtherDeductions, p.TotalDeductions,
		p.Net, p.SGKEmployer, p.UnemploymentEmployer, p.EmployerCost, p.Status, p.Notes,
		p.ApprovedBy, p.ApprovedAt, p.PaidAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payroll: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PayrollRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM payrolls WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete payroll: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PayrollRepo) List(ctx context.Context, f repository.PayrollFilter) ([]*entity.Payroll, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.EmployeeID != "" {
		w.add("employee_id = ?", f.EmployeeID)
	}
	if f.Year != 0 {
		w.add("year = ?", f.Year)
	}
	if f.Month != 0 {
		w.add("month = ?", f.Month)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `SELECT ` + payrollColumns + `, COUNT(*) OVER() FROM payrolls` + w.sql() +
		` ORDER BY year DESC, month DESC, created_at` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Payroll
		total int
	)
	for rows.Next() {
		p, err := scanPayroll(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payroll: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *PayrollRepo) ListByPeriod(ctx context.Context, companyID string, year, month int) ([]*entity.Payroll, error) {
	query := `SELECT ` + payrollColumns + ` FROM payrolls
		WHERE company_id = $1 AND year = $2 AND month = $3 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, companyID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list payrolls by period: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PayrollRepo) PriorTaxBase(ctx context.Context, companyID, employeeID string, year, month int) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(income_tax_base), 0) FROM payrolls
		 WHERE company_id = $1 AND employee_id = $2 AND year = $3 AND month < $4`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, employeeID, year, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("prior tax base: %w", err)
	}
	return total, nil
}

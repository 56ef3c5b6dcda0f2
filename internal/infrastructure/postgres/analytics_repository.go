package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo dashboard için salt okunur sorgular.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository analitik adaptörünü kurar.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetHeadcount işten ayrılanlar hariç toplam, aktif ve izinli personel sayıları.
func (r *AnalyticsRepo) GetHeadcount(ctx context.Context, companyID string) (repository.Headcount, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE status <> 'terminated') AS total,
	    COUNT(*) FILTER (WHERE status = 'active')      AS active,
	    COUNT(*) FILTER (WHERE status = 'on_leave')    AS on_leave
	FROM employees
	WHERE company_id = $1`
	var h repository.Headcount
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&h.Total, &h.Active, &h.OnLeave); err != nil {
		return h, fmt.Errorf("analytics.GetHeadcount: %w", err)
	}
	return h, nil
}

func (r *AnalyticsRepo) CountPendingLeaves(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leaves WHERE company_id = $1 AND status = 'pending'`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountPendingLeaves: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountOnLeave(ctx context.Context, companyID string, day time.Time) (int, error) {
	const query = `
	SELECT COUNT(DISTINCT employee_id) FROM leaves
	 WHERE company_id = $1
	   AND status = 'approved'
	   AND $2::date BETWEEN start_date AND end_date`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountOnLeave: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountOpenJobs(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE company_id = $1 AND status = 'open'`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountOpenJobs: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountApplicationsSince(ctx context.Context, companyID string, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_applications WHERE company_id = $1 AND created_at >= $2`, companyID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountApplicationsSince: %w", err)
	}
	return n, nil
}

// GetPayrollTotals dönemin bordro toplamları; kayıt yoksa sıfır döner.
func (r *AnalyticsRepo) GetPayrollTotals(ctx context.Context, companyID string, year, month int) (repository.PayrollTotals, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(gross),         0),
	    COALESCE(SUM(net),           0),
	    COALESCE(SUM(employer_cost), 0)
	FROM payrolls
	WHERE company_id = $1 AND year = $2 AND month = $3`
	var t repository.PayrollTotals
	if err := r.q.QueryRow(ctx, query, companyID, year, month).
		Scan(&t.Count, &t.Gross, &t.Net, &t.EmployerCost); err != nil {
		return t, fmt.Errorf("analytics.GetPayrollTotals: %w", err)
	}
	return t, nil
}

func (r *AnalyticsRepo) CountUpcomingTrainings(ctx context.Context, companyID string, from time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM trainings WHERE company_id = $1 AND status = 'planned' AND start_date >= $2`,
		companyID, from).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountUpcomingTrainings: %w", err)
	}
	return n, nil
}

// GetHeadcountByDepartment departmansız personel boş ID ile "Atanmamış" grubunda toplanır.
func (r *AnalyticsRepo) GetHeadcountByDepartment(ctx context.Context, companyID string) ([]repository.DepartmentHeadcount, error) {
	const query = `
	SELECT
	    COALESCE(d.id::TEXT, '')      AS department_id,
	    COALESCE(d.name, 'Atanmamış') AS department_name,
	    COUNT(*)                      AS employee_count
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	WHERE e.company_id = $1
	  AND e.status <> 'terminated'
	GROUP BY d.id, d.name
	ORDER BY employee_count DESC, department_name`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetHeadcountByDepartment: %w", err)
	}
	defer rows.Close()

	results := []repository.DepartmentHeadcount{}
	for rows.Next() {
		var row repository.DepartmentHeadcount
		if err := rows.Scan(&row.DepartmentID, &row.DepartmentName, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetHeadcountByDepartment scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.LeaveRepository = (*LeaveRepo)(nil)

// LeaveRepo LeaveRepository portunun PostgreSQL uygulaması.
type LeaveRepo struct {
	q Querier
}

// NewLeaveRepository izin adaptörünü kurar.
func NewLeaveRepository(q Querier) *LeaveRepo {
	return &LeaveRepo{q: q}
}

const leaveColumns = `id, company_id, employee_id, type, start_date, end_date, days, reason, status,
	reviewed_by, reviewed_at, rejection_reason, created_by, created_at, updated_at`

func scanLeave(row pgx.Row, extra ...any) (*entity.Leave, error) {
	var l entity.Leave
	dest := append([]any{
		&l.ID, &l.CompanyID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Days, &l.Reason,
		&l.Status, &l.ReviewedBy, &l.ReviewedAt, &l.RejectionReason, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeaveRepo) Create(ctx context.Context, l *entity.Leave) error {
	query := `INSERT INTO leaves (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.EmployeeID, l.Type, l.StartDate, l.EndDate, l.Days, l.Reason,
		l.Status, l.ReviewedBy, l.ReviewedAt, l.RejectionReason, l.CreatedBy, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert leave: %w", err)
	}
	return nil
}

func (r *LeaveRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Leave, error) {
	l, err := scanLeave(r.q.QueryRow(ctx,
		`SELECT `+leaveColumns+` FROM leaves WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave: %w", err)
	}
	return l, nil
}

func (r *LeaveRepo) Update(ctx context.Context, l *entity.Leave) error {
	query := `
		UPDATE leaves
		   SET type = $3, start_date = $4, end_date = $5, days = $6, reason = $7, status = $8,
		       reviewed_by = $9, reviewed_at = $10, rejection_reason = $11, updated_at = $12
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		l.CompanyID, l.ID, l.Type, l.StartDate, l.EndDate, l.Days, l.Reason, l.Status,
		l.ReviewedBy, l.ReviewedAt, l.RejectionReason, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update leave: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeaveRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM leaves WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeaveRepo) List(ctx context.Context, f repository.LeaveFilter) ([]*entity.Leave, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.EmployeeID != "" {
		w.add("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.From != nil {
		w.add("end_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("start_date <= ?", *f.To)
	}
	query := `SELECT ` + leaveColumns + `, COUNT(*) OVER() FROM leaves` + w.sql() +
		` ORDER BY start_date DESC, created_at DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Leave
		total int
	)
	for rows.Next() {
		l, err := scanLeave(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan leave: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

func (r *LeaveRepo) HasOverlap(ctx context.Context, companyID, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM leaves
			 WHERE company_id  = $1
			   AND employee_id = $2
			   AND status IN ('pending', 'approved')
			   AND start_date <= $4
			   AND end_date   >= $3
			   AND ($5 = '' OR id::text <> $5)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, companyID, employeeID, start, end, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check leave overlap: %w", err)
	}
	return exists, nil
}

func (r *LeaveRepo) SumDays(ctx context.Context, companyID, employeeID, leaveType string, year int, statuses []string) (int, error) {
	const query = `
		SELECT COALESCE(SUM(days), 0) FROM leaves
		 WHERE company_id  = $1
		   AND employee_id = $2
		   AND type        = $3
		   AND EXTRACT(YEAR FROM start_date) = $4
		   AND status = ANY($5)`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID, employeeID, leaveType, year, statuses).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum leave days: %w", err)
	}
	return n, nil
}

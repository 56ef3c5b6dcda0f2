package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.PerformanceRepository = (*PerformanceRepo)(nil)

// PerformanceRepo PerformanceRepository portunun PostgreSQL uygulaması.
type PerformanceRepo struct {
	q Querier
}

// NewPerformanceRepository değerlendirme adaptörünü kurar.
func NewPerformanceRepository(q Querier) *PerformanceRepo {
	return &PerformanceRepo{q: q}
}

const performanceColumns = `id, company_id, employee_id, reviewer_id, period, review_date, quality,
	productivity, teamwork, communication, leadership, overall_score, strengths, improvements, comments,
	status, submitted_at, acknowledged_at, created_at, updated_at`

func scanPerformance(row pgx.Row, extra ...any) (*entity.Performance, error) {
	var p entity.Performance
	dest := append([]any{
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.ReviewerID, &p.Period, &p.ReviewDate, &p.Quality,
		&p.Productivity, &p.Teamwork, &p.Communication, &p.Leadership, &p.OverallScore, &p.Strengths,
		&p.Improvements, &p.Comments, &p.Status, &p.SubmittedAt, &p.AcknowledgedAt, &p.CreatedAt, &p.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PerformanceRepo) Create(ctx context.Context, p *entity.Performance) error {
	query := `INSERT INTO performance_reviews (` + performanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.EmployeeID, p.ReviewerID, p.Period, p.ReviewDate, p.Quality,
		p.Productivity, p.Teamwork, p.Communication, p.Leadership, p.OverallScore, p.Strengths,
		p.Improvements, p.Comments, p.Status, p.SubmittedAt, p.AcknowledgedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert performance review: %w", err)
	}
	return nil
}

func (r *PerformanceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Performance, error) {
	p, err := scanPerformance(r.q.QueryRow(ctx,
		`SELECT `+performanceColumns+` FROM performance_reviews WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get performance review: %w", err)
	}
	return p, nil
}

func (r *PerformanceRepo) Update(ctx context.Context, p *entity.Performance) error {
	query := `
		UPDATE performance_reviews
		   SET reviewer_id = $3, period = $4, review_date = $5, quality = $6, productivity = $7,
		       teamwork = $8, communication = $9, leadership = $10, overall_score = $11, strengths = $12,
		       improvements = $13, comments = $14, status = $15, submitted_at = $16, acknowledged_at = $17,
		       updated_at = $18
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, p.ReviewerID, p.Period, p.ReviewDate, p.Quality, p.Productivity,
		p.Teamwork, p.Communication, p.Leadership, p.OverallScore, p.Strengths, p.Improvements,
		p.Comments, p.Status, p.SubmittedAt, p.AcknowledgedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update performance review: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PerformanceRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM performance_reviews WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete performance review: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PerformanceRepo) List(ctx context.Context, f repository.PerformanceFilter) ([]*entity.Performance, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.EmployeeID != "" {
		w.add("employee_id = ?", f.EmployeeID)
	}
	if f.ReviewerID != "" {
		w.add("reviewer_id = ?", f.ReviewerID)
	}
	if f.Period != "" {
		w.add("period = ?", f.Period)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.ExcludeDrafts {
		w.add("status <> ?", entity.ReviewDraft)
	}
	query := `SELECT ` + performanceColumns + `, COUNT(*) OVER() FROM performance_reviews` + w.sql() +
		` ORDER BY review_date DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list performance reviews: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Performance
		total int
	)
	for rows.Next() {
		p, err := scanPerformance(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan performance review: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// ListByEmployee personelin tüm değerlendirmelerini dönem sırasıyla döner.
func (r *PerformanceRepo) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]*entity.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performance_reviews
		WHERE company_id = $1 AND employee_id = $2 ORDER BY period, review_date`
	rows, err := r.q.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list performance by employee: %w", err)
	}
	defer rows.Close()

	var list []*entity.Performance
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan performance review: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

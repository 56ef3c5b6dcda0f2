package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var (
	_ repository.JobRepository         = (*JobRepo)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepo)(nil)
)

// ── İlanlar ─────────────────────────────────────────────────────────────────

// JobRepo JobRepository portunun PostgreSQL uygulaması.
type JobRepo struct {
	q Querier
}

// NewJobRepository ilan adaptörünü kurar.
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, company_id, department_id, title, description, requirements, location,
	employment_type, salary_min, salary_max, status, closes_at, created_by, created_at, updated_at`

func scanJob(row pgx.Row, extra ...any) (*entity.Job, error) {
	var j entity.Job
	dest := append([]any{
		&j.ID, &j.CompanyID, &j.DepartmentID, &j.Title, &j.Description, &j.Requirements, &j.Location,
		&j.EmploymentType, &j.SalaryMin, &j.SalaryMax, &j.Status, &j.ClosesAt, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		j.ID, j.CompanyID, j.DepartmentID, j.Title, j.Description, j.Requirements, j.Location,
		j.EmploymentType, j.SalaryMin, j.SalaryMax, j.Status, j.ClosesAt, j.CreatedBy, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Job, error) {
	j, err := scanJob(r.q.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (r *JobRepo) GetPublic(ctx context.Context, id string) (*entity.Job, error) {
	j, err := scanJob(r.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get public job: %w", err)
	}
	return j, nil
}

func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	query := `
		UPDATE jobs
		   SET department_id = $3, title = $4, description = $5, requirements = $6, location = $7,
		       employment_type = $8, salary_min = $9, salary_max = $10, status = $11, closes_at = $12,
		       updated_at = $13
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		j.CompanyID, j.ID, j.DepartmentID, j.Title, j.Description, j.Requirements, j.Location,
		j.EmploymentType, j.SalaryMin, j.SalaryMax, j.Status, j.ClosesAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM jobs WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepo) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.DepartmentID != "" {
		w.add("department_id = ?", f.DepartmentID)
	}
	query := `SELECT ` + jobColumns + `, COUNT(*) OVER() FROM jobs` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Job
		total int
	)
	for rows.Next() {
		j, err := scanJob(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, total, rows.Err()
}

// ── Başvurular ──────────────────────────────────────────────────────────────

// ApplicationRepo ApplicationRepository portunun PostgreSQL uygulaması.
type ApplicationRepo struct {
	q Querier
}

// NewApplicationRepository başvuru adaptörünü kurar.
func NewApplicationRepository(q Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

const applicationColumns = `id, company_id, job_id, first_name, last_name, email, phone, cover_letter,
	resume_text, cv_key, stage, notes, ai_score, ai_summary, ai_strengths, ai_concerns, evaluated_at,
	created_at, updated_at`

func scanApplication(row pgx.Row, extra ...any) (*entity.JobApplication, error) {
	var a entity.JobApplication
	dest := append([]any{
		&a.ID, &a.CompanyID, &a.JobID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.CoverLetter,
		&a.ResumeText, &a.CVKey, &a.Stage, &a.Notes, &a.AIScore, &a.AISummary, &a.AIStrengths,
		&a.AIConcerns, &a.EvaluatedAt, &a.CreatedAt, &a.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create başvuruyu kaydeder. Aynı ilana aynı e-postayla ikinci başvuru domain.ErrDuplicate döner.
func (r *ApplicationRepo) Create(ctx context.Context, a *entity.JobApplication) error {
	query := `INSERT INTO job_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.JobID, a.FirstName, a.LastName, a.Email, a.Phone, a.CoverLetter,
		a.ResumeText, a.CVKey, a.Stage, a.Notes, a.AIScore, a.AISummary, a.AIStrengths, a.AIConcerns,
		a.EvaluatedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.JobApplication, error) {
	a, err := scanApplication(r.q.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, a *entity.JobApplication) error {
	query := `
		UPDATE job_applications
		   SET stage = $3, notes = $4, cv_key = $5, ai_score = $6, ai_summary = $7, ai_strengths = $8,
		       ai_concerns = $9, evaluated_at = $10, updated_at = $11
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		a.CompanyID, a.ID, a.Stage, a.Notes, a.CVKey, a.AIScore, a.AISummary, a.AIStrengths,
		a.AIConcerns, a.EvaluatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM job_applications WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) List(ctx context.Context, f repository.ApplicationFilter) ([]*entity.JobApplication, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.JobID != "" {
		w.add("job_id = ?", f.JobID)
	}
	if f.Stage != "" {
		w.add("stage = ?", f.Stage)
	}
	query := `SELECT ` + applicationColumns + `, COUNT(*) OVER() FROM job_applications` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.JobApplication
		total int
	)
	for rows.Next() {
		a, err := scanApplication(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

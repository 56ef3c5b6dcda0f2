package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.TrainingRepository = (*TrainingRepo)(nil)

// TrainingRepo TrainingRepository portunun PostgreSQL uygulaması.
type TrainingRepo struct {
	q Querier
}

// NewTrainingRepository eğitim adaptörünü kurar.
func NewTrainingRepository(q Querier) *TrainingRepo {
	return &TrainingRepo{q: q}
}

const trainingColumns = `id, company_id, title, description, trainer, location, start_date, end_date,
	capacity, status, created_at, updated_at`

func scanTraining(row pgx.Row, extra ...any) (*entity.Training, error) {
	var t entity.Training
	dest := append([]any{
		&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.Trainer, &t.Location, &t.StartDate,
		&t.EndDate, &t.Capacity, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainingRepo) Create(ctx context.Context, t *entity.Training) error {
	query := `INSERT INTO trainings (` + trainingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.Title, t.Description, t.Trainer, t.Location, t.StartDate, t.EndDate,
		t.Capacity, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert training: %w", err)
	}
	return nil
}

func (r *TrainingRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Training, error) {
	t, err := scanTraining(r.q.QueryRow(ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get training: %w", err)
	}
	return t, nil
}

func (r *TrainingRepo) LockForEnrolment(ctx context.Context, companyID, id string) (*entity.Training, error) {
	t, err := scanTraining(r.q.QueryRow(ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock training: %w", err)
	}
	return t, nil
}

func (r *TrainingRepo) Update(ctx context.Context, t *entity.Training) error {
	query := `
		UPDATE trainings
		   SET title = $3, description = $4, trainer = $5, location = $6, start_date = $7, end_date = $8,
		       capacity = $9, status = $10, updated_at = $11
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		t.CompanyID, t.ID, t.Title, t.Description, t.Trainer, t.Location, t.StartDate, t.EndDate,
		t.Capacity, t.Status, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update training: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM trainings WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) List(ctx context.Context, f repository.TrainingFilter) ([]*entity.Training, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `SELECT ` + trainingColumns + `, COUNT(*) OVER() FROM trainings` + w.sql() +
		` ORDER BY start_date DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list trainings: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Training
		total int
	)
	for rows.Next() {
		t, err := scanTraining(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan training: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// ── Katılımcılar ────────────────────────────────────────────────────────────

const participantColumns = `id, company_id, training_id, employee_id, completed, completed_at, enrolled_at`

func scanParticipant(row pgx.Row) (*entity.TrainingParticipant, error) {
	var p entity.TrainingParticipant
	if err := row.Scan(&p.ID, &p.CompanyID, &p.TrainingID, &p.EmployeeID, &p.Completed,
		&p.CompletedAt, &p.EnrolledAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// AddParticipant kayıt ekler; aynı personel ikinci kez eklenirse domain.ErrDuplicate.
func (r *TrainingRepo) AddParticipant(ctx context.Context, p *entity.TrainingParticipant) error {
	query := `INSERT INTO training_participants (` + participantColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.TrainingID, p.EmployeeID, p.Completed, p.CompletedAt, p.EnrolledAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (r *TrainingRepo) GetParticipant(ctx context.Context, trainingID, employeeID string) (*entity.TrainingParticipant, error) {
	p, err := scanParticipant(r.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM training_participants WHERE training_id = $1 AND employee_id = $2`,
		trainingID, employeeID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (r *TrainingRepo) UpdateParticipant(ctx context.Context, p *entity.TrainingParticipant) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE training_participants SET completed = $3, completed_at = $4 WHERE training_id = $1 AND employee_id = $2`,
		p.TrainingID, p.EmployeeID, p.Completed, p.CompletedAt)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) RemoveParticipant(ctx context.Context, trainingID, employeeID string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM training_participants WHERE training_id = $1 AND employee_id = $2`, trainingID, employeeID)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) ListParticipants(ctx context.Context, trainingID string) ([]*entity.TrainingParticipant, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+participantColumns+` FROM training_participants WHERE training_id = $1 ORDER BY enrolled_at`, trainingID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var list []*entity.TrainingParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountParticipants kayıtlı katılımcı sayısı.
func (r *TrainingRepo) CountParticipants(ctx context.Context, trainingID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM training_participants WHERE training_id = $1`, trainingID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

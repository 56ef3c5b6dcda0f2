package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var (
	_ repository.AuditLogRepository = (*AuditLogRepo)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
)

// AuditLogRepo yalnızca ekleme yapan denetim kaydı adaptörü.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository denetim adaptörünü kurar.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, company_id, user_id, action, entity_type, entity_id, changes, ip_address, user_agent, created_at`

func scanAudit(row pgx.Row, extra ...any) (*entity.AuditLog, error) {
	var a entity.AuditLog
	dest := append([]any{
		&a.ID, &a.CompanyID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID, &a.Changes,
		&a.IPAddress, &a.UserAgent, &a.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuditLogRepo) Create(ctx context.Context, a *entity.AuditLog) error {
	query := `INSERT INTO audit_logs (` + auditColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.UserID, a.Action, a.EntityType, a.EntityID, a.Changes,
		a.IPAddress, a.UserAgent, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	w := &where{}
	w.add("company_id = ?", f.CompanyID)
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		w.add("action = ?", f.Action)
	}
	if f.EntityType != "" {
		w.add("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		w.add("entity_id = ?", f.EntityID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= ?", *f.To)
	}
	query := `SELECT ` + auditColumns + `, COUNT(*) OVER() FROM audit_logs` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.AuditLog
		total int
	)
	for rows.Next() {
		a, err := scanAudit(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// ActivityRepo aktivite akışı adaptörü.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository aktivite adaptörünü kurar.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	const query = `
		INSERT INTO activities (id, company_id, user_id, actor_name, action, entity_type, entity_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.UserID, a.ActorName, a.Action, a.EntityType, a.EntityID, a.Description, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) ListRecent(ctx context.Context, companyID string, limit int) ([]*entity.Activity, error) {
	const query = `
		SELECT id, company_id, user_id, actor_name, action, entity_type, entity_id, description, created_at
		  FROM activities WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.UserID, &a.ActorName, &a.Action, &a.EntityType,
			&a.EntityID, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

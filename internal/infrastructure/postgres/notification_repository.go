package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo NotificationRepository portunun PostgreSQL uygulaması.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository bildirim adaptörünü kurar.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, company_id, user_id, type, title, message, link, entity_type, entity_id,
	is_read, read_at, created_at`

func scanNotification(row pgx.Row, extra ...any) (*entity.Notification, error) {
	var n entity.Notification
	dest := append([]any{
		&n.ID, &n.CompanyID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.EntityType,
		&n.EntityID, &n.IsRead, &n.ReadAt, &n.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.CompanyID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.EntityType, n.EntityID,
		n.IsRead, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter) ([]*entity.Notification, int, error) {
	w := &where{}
	w.add("user_id = ?", f.UserID)
	if f.UnreadOnly {
		w.add("is_read = ?", false)
	}
	query := `SELECT ` + notificationColumns + `, COUNT(*) OVER() FROM notifications` + w.sql() +
		` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Notification
		total int
	)
	for rows.Next() {
		n, err := scanNotification(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, total, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, now()) WHERE user_id = $1 AND id = $2`,
		userID, id)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = now() WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *NotificationRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

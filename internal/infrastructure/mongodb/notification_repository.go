package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo NotificationRepository portunun MongoDB uygulaması.
type NotificationRepo struct {
	c collection[entity.Notification]
}

// NewNotificationRepository bildirim adaptörünü kurar.
func NewNotificationRepository(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{c: newCollection[entity.Notification](db, colNotifications)}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return r.c.insert(ctx, n)
}

func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter) ([]*entity.Notification, int, error) {
	filter := bson.M{"user_id": f.UserID}
	if f.UnreadOnly {
		filter["is_read"] = false
	}
	return r.c.findPage(ctx, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page)
}

func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.c.coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true, "read_at": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	res, err := r.c.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": time.Now().UTC()}})
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(res.ModifiedCount), nil
}

func (r *NotificationRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	return r.c.deleteOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	return r.c.count(ctx, bson.M{"user_id": userID, "is_read": false})
}

package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var (
	_ repository.AuditLogRepository = (*AuditLogRepo)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
)

// AuditLogRepo denetim kaydı adaptörü; yalnızca ekleme ve okuma yapar.
type AuditLogRepo struct {
	c collection[entity.AuditLog]
}

// NewAuditLogRepository denetim adaptörünü kurar.
func NewAuditLogRepository(db *mongo.Database) *AuditLogRepo {
	return &AuditLogRepo{c: newCollection[entity.AuditLog](db, colAuditLogs)}
}

func (r *AuditLogRepo) Create(ctx context.Context, a *entity.AuditLog) error {
	return r.c.insert(ctx, a)
}

func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.EntityType != "" {
		filter["entity_type"] = f.EntityType
	}
	if f.EntityID != "" {
		filter["entity_id"] = f.EntityID
	}
	if f.From != nil || f.To != nil {
		created := bson.M{}
		if f.From != nil {
			created["$gte"] = *f.From
		}
		if f.To != nil {
			created["$lte"] = *f.To
		}
		filter["created_at"] = created
	}
	return r.c.findPage(ctx, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page)
}

// ActivityRepo aktivite akışı adaptörü.
type ActivityRepo struct {
	c collection[entity.Activity]
}

// NewActivityRepository aktivite adaptörünü kurar.
func NewActivityRepository(db *mongo.Database) *ActivityRepo {
	return &ActivityRepo{c: newCollection[entity.Activity](db, colActivities)}
}

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	return r.c.insert(ctx, a)
}

func (r *ActivityRepo) ListRecent(ctx context.Context, companyID string, limit int) ([]*entity.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.c.coll.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cur.Close(ctx)

	var list []*entity.Activity
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return list, nil
}

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

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo SettingRepository portunun MongoDB uygulaması.
type SettingRepo struct {
	c collection[entity.SystemSetting]
}

// NewSettingRepository ayar adaptörünü kurar.
func NewSettingRepository(db *mongo.Database) *SettingRepo {
	return &SettingRepo{c: newCollection[entity.SystemSetting](db, colSettings)}
}

func (r *SettingRepo) Get(ctx context.Context, companyID, key string) (*entity.SystemSetting, error) {
	return r.c.findOne(ctx, bson.M{"company_id": companyID, "key": key})
}

func (r *SettingRepo) List(ctx context.Context, companyID, category string) ([]*entity.SystemSetting, error) {
	filter := bson.M{"company_id": companyID}
	if category != "" {
		filter["category"] = category
	}
	return r.c.findAll(ctx, filter, bson.D{{Key: "key", Value: 1}})
}

func (r *SettingRepo) Upsert(ctx context.Context, s *entity.SystemSetting) error {
	update := bson.M{
		"$set": bson.M{
			"value":       s.Value,
			"category":    s.Category,
			"description": s.Description,
			"updated_by":  s.UpdatedBy,
			"updated_at":  s.UpdatedAt,
		},
		"$setOnInsert": bson.M{"_id": s.ID},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved entity.SystemSetting
	err := r.c.coll.FindOneAndUpdate(ctx, bson.M{"company_id": s.CompanyID, "key": s.Key}, update, opts).Decode(&saved)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	s.ID = saved.ID
	return nil
}

func (r *SettingRepo) Delete(ctx context.Context, companyID, key string) (bool, error) {
	return r.c.deleteOne(ctx, bson.M{"company_id": companyID, "key": key})
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.LeaveRepository = (*LeaveRepo)(nil)

// LeaveRepo LeaveRepository portunun MongoDB uygulaması.
type LeaveRepo struct {
	c collection[entity.Leave]
}

// NewLeaveRepository izin adaptörünü kurar.
func NewLeaveRepository(db *mongo.Database) *LeaveRepo {
	return &LeaveRepo{c: newCollection[entity.Leave](db, colLeaves)}
}

func (r *LeaveRepo) Create(ctx context.Context, l *entity.Leave) error {
	return r.c.insert(ctx, l)
}

func (r *LeaveRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Leave, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *LeaveRepo) Update(ctx context.Context, l *entity.Leave) error {
	return r.c.replace(ctx, scoped(l.CompanyID, l.ID), l, domain.ErrNotFound)
}

func (r *LeaveRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeaveRepo) List(ctx context.Context, f repository.LeaveFilter) ([]*entity.Leave, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.EmployeeID != "" {
		filter["employee_id"] = f.EmployeeID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.From != nil {
		filter["end_date"] = bson.M{"$gte": *f.From}
	}
	if f.To != nil {
		filter["start_date"] = bson.M{"$lte": *f.To}
	}
	sort := bson.D{{Key: "start_date", Value: -1}, {Key: "created_at", Value: -1}}
	return r.c.findPage(ctx, filter, sort, f.Page)
}

func (r *LeaveRepo) HasOverlap(ctx context.Context, companyID, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	filter := bson.M{
		"company_id":  companyID,
		"employee_id": employeeID,
		"status":      bson.M{"$in": bson.A{entity.LeavePending, entity.LeaveApproved}},
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check leave overlap: %w", err)
	}
	return n > 0, nil
}

func (r *LeaveRepo) SumDays(ctx context.Context, companyID, employeeID, leaveType string, year int, statuses []string) (int, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"company_id":  companyID,
			"employee_id": employeeID,
			"type":        leaveType,
			"status":      bson.M{"$in": statuses},
			"start_date":  bson.M{"$gte": from, "$lt": from.AddDate(1, 0, 0)},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "days": bson.M{"$sum": "$days"}}}},
	}
	cur, err := r.c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum leave days: %w", err)
	}
	defer cur.Close(ctx)

	var res struct {
		Days int `bson:"days"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&res); err != nil {
			return 0, fmt.Errorf("decode leave days: %w", err)
		}
	}
	return res.Days, cur.Err()
}

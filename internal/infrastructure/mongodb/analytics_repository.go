package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo dashboard sorgularının MongoDB karşılıkları.
type AnalyticsRepo struct {
	db *mongo.Database
}

// NewAnalyticsRepository analitik adaptörünü kurar.
func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) count(ctx context.Context, coll string, filter bson.M) (int, error) {
	n, err := r.db.Collection(coll).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("analytics count %s: %w", coll, err)
	}
	return int(n), nil
}

func (r *AnalyticsRepo) GetHeadcount(ctx context.Context, companyID string) (repository.Headcount, error) {
	var (
		h   repository.Headcount
		err error
	)
	if h.Total, err = r.count(ctx, colEmployees, bson.M{"company_id": companyID, "status": bson.M{"$ne": entity.EmployeeTerminated}}); err != nil {
		return h, err
	}
	if h.Active, err = r.count(ctx, colEmployees, bson.M{"company_id": companyID, "status": entity.EmployeeActive}); err != nil {
		return h, err
	}
	h.OnLeave, err = r.count(ctx, colEmployees, bson.M{"company_id": companyID, "status": entity.EmployeeOnLeave})
	return h, err
}

func (r *AnalyticsRepo) CountPendingLeaves(ctx context.Context, companyID string) (int, error) {
	return r.count(ctx, colLeaves, bson.M{"company_id": companyID, "status": entity.LeavePending})
}

func (r *AnalyticsRepo) CountOnLeave(ctx context.Context, companyID string, day time.Time) (int, error) {
	filter := bson.M{
		"company_id": companyID,
		"status":     entity.LeaveApproved,
		"start_date": bson.M{"$lte": day},
		"end_date":   bson.M{"$gte": day},
	}
	ids, err := r.db.Collection(colLeaves).Distinct(ctx, "employee_id", filter)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountOnLeave: %w", err)
	}
	return len(ids), nil
}

func (r *AnalyticsRepo) CountOpenJobs(ctx context.Context, companyID string) (int, error) {
	return r.count(ctx, colJobs, bson.M{"company_id": companyID, "status": entity.JobOpen})
}

func (r *AnalyticsRepo) CountApplicationsSince(ctx context.Context, companyID string, since time.Time) (int, error) {
	return r.count(ctx, colApplications, bson.M{"company_id": companyID, "created_at": bson.M{"$gte": since}})
}

func (r *AnalyticsRepo) GetPayrollTotals(ctx context.Context, companyID string, year, month int) (repository.PayrollTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID, "year": year, "month": month}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"count":         bson.M{"$sum": 1},
			"gross":         bson.M{"$sum": "$gross"},
			"net":           bson.M{"$sum": "$net"},
			"employer_cost": bson.M{"$sum": "$employer_cost"},
		}}},
	}
	var t repository.PayrollTotals
	cur, err := r.db.Collection(colPayrolls).Aggregate(ctx, pipeline)
	if err != nil {
		return t, fmt.Errorf("analytics.GetPayrollTotals: %w", err)
	}
	defer cur.Close(ctx)

	var res struct {
		Count        int             `bson:"count"`
		Gross        decimal.Decimal `bson:"gross"`
		Net          decimal.Decimal `bson:"net"`
		EmployerCost decimal.Decimal `bson:"employer_cost"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&res); err != nil {
			return t, fmt.Errorf("analytics.GetPayrollTotals decode: %w", err)
		}
	}
	t.Count, t.Gross, t.Net, t.EmployerCost = res.Count, res.Gross, res.Net, res.EmployerCost
	return t, cur.Err()
}

func (r *AnalyticsRepo) CountUpcomingTrainings(ctx context.Context, companyID string, from time.Time) (int, error) {
	return r.count(ctx, colTrainings, bson.M{
		"company_id": companyID,
		"status":     entity.TrainingPlanned,
		"start_date": bson.M{"$gte": from},
	})
}

func (r *AnalyticsRepo) GetHeadcountByDepartment(ctx context.Context, companyID string) ([]repository.DepartmentHeadcount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID, "status": bson.M{"$ne": entity.EmployeeTerminated}}}},
		{{Key: "$group", Value: bson.M{"_id": "$department_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         colDepartments,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "department",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cur, err := r.db.Collection(colEmployees).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetHeadcountByDepartment: %w", err)
	}
	defer cur.Close(ctx)

	results := []repository.DepartmentHeadcount{}
	for cur.Next(ctx) {
		var row struct {
			ID         *string `bson:"_id"`
			Count      int     `bson:"count"`
			Department []struct {
				Name string `bson:"name"`
			} `bson:"department"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("analytics.GetHeadcountByDepartment decode: %w", err)
		}
		item := repository.DepartmentHeadcount{DepartmentName: "Atanmamış", Count: row.Count}
		if row.ID != nil && len(row.Department) > 0 {
			item.DepartmentID = *row.ID
			item.DepartmentName = row.Department[0].Name
		}
		results = append(results, item)
	}
	return results, cur.Err()
}

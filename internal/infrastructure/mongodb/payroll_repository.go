package mongodb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo PayrollRepository portunun MongoDB uygulaması.
type PayrollRepo struct {
	c collection[entity.Payroll]
}

// NewPayrollRepository bordro adaptörünü kurar.
func NewPayrollRepository(db *mongo.Database) *PayrollRepo {
	return &PayrollRepo{c: newCollection[entity.Payroll](db, colPayrolls)}
}

func (r *PayrollRepo) Create(ctx context.Context, p *entity.Payroll) error {
	return r.c.insert(ctx, p)
}

func (r *PayrollRepo) CreateIfAbsent(ctx context.Context, p *entity.Payroll) (bool, error) {
	return r.c.insertIfAbsent(ctx, bson.M{
		"company_id": p.CompanyID, "employee_id": p.EmployeeID, "year": p.Year, "month": p.Month,
	}, p)
}

func (r *PayrollRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Payroll, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *PayrollRepo) GetByPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*entity.Payroll, error) {
	return r.c.findOne(ctx, bson.M{"company_id": companyID, "employee_id": employeeID, "year": year, "month": month})
}

func (r *PayrollRepo) Update(ctx context.Context, p *entity.Payroll) error {
	return r.c.replace(ctx, scoped(p.CompanyID, p.ID), p, domain.ErrNotFound)
}

func (r *PayrollRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PayrollRepo) List(ctx context.Context, f repository.PayrollFilter) ([]*entity.Payroll, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.EmployeeID != "" {
		filter["employee_id"] = f.EmployeeID
	}
	if f.Year != 0 {
		filter["year"] = f.Year
	}
	if f.Month != 0 {
		filter["month"] = f.Month
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	sort := bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}, {Key: "created_at", Value: 1}}
	return r.c.findPage(ctx, filter, sort, f.Page)
}

func (r *PayrollRepo) ListByPeriod(ctx context.Context, companyID string, year, month int) ([]*entity.Payroll, error) {
	return r.c.findAll(ctx, bson.M{"company_id": companyID, "year": year, "month": month},
		bson.D{{Key: "created_at", Value: 1}})
}

func (r *PayrollRepo) PriorTaxBase(ctx context.Context, companyID, employeeID string, year, month int) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"company_id":  companyID,
			"employee_id": employeeID,
			"year":        year,
			"month":       bson.M{"$lt": month},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$income_tax_base"}}}},
	}
	cur, err := r.c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, fmt.Errorf("prior tax base: %w", err)
	}
	defer cur.Close(ctx)

	var res struct {
		Total decimal.Decimal `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&res); err != nil {
			return decimal.Zero, fmt.Errorf("decode prior tax base: %w", err)
		}
	}
	return res.Total, cur.Err()
}

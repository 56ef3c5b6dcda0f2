package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.PerformanceRepository = (*PerformanceRepo)(nil)

// PerformanceRepo PerformanceRepository portunun MongoDB uygulaması.
type PerformanceRepo struct {
	c collection[entity.Performance]
}

// NewPerformanceRepository değerlendirme adaptörünü kurar.
func NewPerformanceRepository(db *mongo.Database) *PerformanceRepo {
	return &PerformanceRepo{c: newCollection[entity.Performance](db, colPerformance)}
}

func (r *PerformanceRepo) Create(ctx context.Context, p *entity.Performance) error {
	return r.c.insert(ctx, p)
}

func (r *PerformanceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Performance, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *PerformanceRepo) Update(ctx context.Context, p *entity.Performance) error {
	return r.c.replace(ctx, scoped(p.CompanyID, p.ID), p, domain.ErrNotFound)
}

func (r *PerformanceRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PerformanceRepo) List(ctx context.Context, f repository.PerformanceFilter) ([]*entity.Performance, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.EmployeeID != "" {
		filter["employee_id"] = f.EmployeeID
	}
	if f.ReviewerID != "" {
		filter["reviewer_id"] = f.ReviewerID
	}
	if f.Period != "" {
		filter["period"] = f.Period
	}
	if f.Status != "" {
		filter["status"] = f.Status
	} else if f.ExcludeDrafts {
		filter["status"] = bson.M{"$ne": entity.ReviewDraft}
	}
	return r.c.findPage(ctx, filter, bson.D{{Key: "review_date", Value: -1}}, f.Page)
}

func (r *PerformanceRepo) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]*entity.Performance, error) {
	sort := bson.D{{Key: "period", Value: 1}, {Key: "review_date", Value: 1}}
	return r.c.findAll(ctx, bson.M{"company_id": companyID, "employee_id": employeeID}, sort)
}

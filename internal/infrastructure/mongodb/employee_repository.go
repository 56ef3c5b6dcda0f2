package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo EmployeeRepository portunun MongoDB uygulaması.
type EmployeeRepo struct {
	c        collection[entity.Employee]
	payrolls *mongo.Collection
}

// NewEmployeeRepository personel adaptörünü kurar.
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepo {
	return &EmployeeRepo{
		c:        newCollection[entity.Employee](db, colEmployees),
		payrolls: db.Collection(colPayrolls),
	}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.c.insert(ctx, e)
}

func (r *EmployeeRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *EmployeeRepo) GetByUserID(ctx context.Context, companyID, userID string) (*entity.Employee, error) {
	return r.c.findOne(ctx, bson.M{"company_id": companyID, "user_id": userID})
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	return r.c.replace(ctx, scoped(e.CompanyID, e.ID), e, domain.ErrNotFound)
}

// Delete bordrosu olan personeli silmez (domain.ErrConflict).
func (r *EmployeeRepo) Delete(ctx context.Context, companyID, id string) error {
	n, err := r.payrolls.CountDocuments(ctx, bson.M{"company_id": companyID, "employee_id": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.DepartmentID != "" {
		filter["department_id"] = f.DepartmentID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"first_name": re},
			bson.M{"last_name": re},
			bson.M{"email": re},
			bson.M{"employee_number": re},
		}
	}
	sort := bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}
	return r.c.findPage(ctx, filter, sort, f.Page)
}

func (r *EmployeeRepo) ListActive(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	filter := bson.M{
		"company_id": companyID,
		"status":     bson.M{"$in": bson.A{entity.EmployeeActive, entity.EmployeeOnLeave}},
	}
	return r.c.findAll(ctx, filter, bson.D{{Key: "employee_number", Value: 1}})
}

func (r *EmployeeRepo) CountByDepartment(ctx context.Context, companyID, departmentID string) (int, error) {
	return r.c.count(ctx, bson.M{
		"company_id":    companyID,
		"department_id": departmentID,
		"status":        bson.M{"$ne": entity.EmployeeTerminated},
	})
}

package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo DepartmentRepository portunun MongoDB uygulaması.
type DepartmentRepo struct {
	c collection[entity.Department]
}

// NewDepartmentRepository departman adaptörünü kurar.
func NewDepartmentRepository(db *mongo.Database) *DepartmentRepo {
	return &DepartmentRepo{c: newCollection[entity.Department](db, colDepartments)}
}

func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	return r.c.insert(ctx, d)
}

func (r *DepartmentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Department, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	return r.c.replace(ctx, scoped(d.CompanyID, d.ID), d, domain.ErrNotFound)
}

// Delete departmanı siler; alt departmanların parent_id'si kaldırılır.
func (r *DepartmentRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	_, err = r.c.coll.UpdateMany(ctx,
		bson.M{"company_id": companyID, "parent_id": id},
		bson.M{"$unset": bson.M{"parent_id": ""}})
	return err
}

func (r *DepartmentRepo) List(ctx context.Context, companyID string, page repository.Page) ([]*entity.Department, int, error) {
	return r.c.findPage(ctx, bson.M{"company_id": companyID}, bson.D{{Key: "name", Value: 1}}, page)
}

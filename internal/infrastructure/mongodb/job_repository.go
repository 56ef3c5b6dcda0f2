package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var (
	_ repository.JobRepository         = (*JobRepo)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepo)(nil)
)

// JobRepo JobRepository portunun MongoDB uygulaması.
type JobRepo struct {
	c            collection[entity.Job]
	applications *mongo.Collection
}

// NewJobRepository ilan adaptörünü kurar.
func NewJobRepository(db *mongo.Database) *JobRepo {
	return &JobRepo{
		c:            newCollection[entity.Job](db, colJobs),
		applications: db.Collection(colApplications),
	}
}

func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	return r.c.insert(ctx, j)
}

func (r *JobRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Job, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *JobRepo) GetPublic(ctx context.Context, id string) (*entity.Job, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	return r.c.replace(ctx, scoped(j.CompanyID, j.ID), j, domain.ErrNotFound)
}

// Delete ilanı ve başvurularını siler.
func (r *JobRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	_, err = r.applications.DeleteMany(ctx, bson.M{"company_id": companyID, "job_id": id})
	return err
}

func (r *JobRepo) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.DepartmentID != "" {
		filter["department_id"] = f.DepartmentID
	}
	return r.c.findPage(ctx, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page)
}

// ApplicationRepo ApplicationRepository portunun MongoDB uygulaması.
type ApplicationRepo struct {
	c collection[entity.JobApplication]
}

// NewApplicationRepository başvuru adaptörünü kurar.
func NewApplicationRepository(db *mongo.Database) *ApplicationRepo {
	return &ApplicationRepo{c: newCollection[entity.JobApplication](db, colApplications)}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *entity.JobApplication) error {
	return r.c.insert(ctx, a)
}

func (r *ApplicationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.JobApplication, error) {
	return r.c.findOne(ctx, scoped(companyID, id))
}

func (r *ApplicationRepo) Update(ctx context.Context, a *entity.JobApplication) error {
	return r.c.replace(ctx, scoped(a.CompanyID, a.ID), a, domain.ErrNotFound)
}

func (r *ApplicationRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) List(ctx context.Context, f repository.ApplicationFilter) ([]*entity.JobApplication, int, error) {
	filter := bson.M{"company_id": f.CompanyID}
	if f.JobID != "" {
		filter["job_id"] = f.JobID
	}
	if f.Stage != "" {
		filter["stage"] = f.Stage
	}
	return r.c.findPage(ctx, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page)
}

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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo CompanyRepository portunun MongoDB uygulaması.
type CompanyRepo struct {
	db        *mongo.Database
	companies collection[entity.Company]
	modules   collection[entity.CompanyModule]
}

// NewCompanyRepository şirket adaptörünü kurar.
func NewCompanyRepository(db *mongo.Database) *CompanyRepo {
	return &CompanyRepo{
		db:        db,
		companies: newCollection[entity.Company](db, colCompanies),
		modules:   newCollection[entity.CompanyModule](db, colModules),
	}
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return r.companies.insert(ctx, c)
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.companies.findOne(ctx, bson.M{"_id": id})
}

func (r *CompanyRepo) GetByTaxNumber(ctx context.Context, taxNumber string) (*entity.Company, error) {
	return r.companies.findOne(ctx, bson.M{"tax_number": taxNumber})
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	return r.companies.replace(ctx, bson.M{"_id": c.ID}, c, domain.ErrNotFound)
}

func (r *CompanyRepo) List(ctx context.Context, page repository.Page) ([]*entity.Company, int, error) {
	return r.companies.findPage(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, page)
}

// Delete şirketi ve şirkete bağlı tüm belgeleri siler.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	ok, err := r.companies.deleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	for _, name := range []string{
		colModules, colDepartments, colUsers, colEmployees, colLeaves, colPerformance, colPayrolls,
		colJobs, colApplications, colTrainings, colParticipants, colNotifications, colSettings,
	} {
		if _, err := r.db.Collection(name).DeleteMany(ctx, bson.M{"company_id": id}); err != nil {
			return fmt.Errorf("delete company %s: %w", name, err)
		}
	}
	return nil
}

func (r *CompanyRepo) ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error) {
	return r.modules.findAll(ctx, bson.M{"company_id": companyID}, bson.D{{Key: "module_name", Value: 1}})
}

// UpsertModule (company_id, module_name) çiftine göre ekler ya da günceller.
func (r *CompanyRepo) UpsertModule(ctx context.Context, m *entity.CompanyModule) error {
	set := bson.M{
		"is_active":    m.IsActive,
		"activated_at": m.ActivatedAt,
		"updated_at":   m.UpdatedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": m.ID, "created_at": m.CreatedAt},
	}
	if m.ExpiresAt != nil {
		set["expires_at"] = *m.ExpiresAt
	} else {
		update["$unset"] = bson.M{"expires_at": ""}
	}

	filter := bson.M{"company_id": m.CompanyID, "module_name": m.ModuleName}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved entity.CompanyModule
	if err := r.modules.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return fmt.Errorf("upsert module %s: %w", m.ModuleName, err)
	}
	m.ID, m.CreatedAt = saved.ID, saved.CreatedAt
	return nil
}

func (r *CompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	filter := bson.M{
		"company_id":  companyID,
		"module_name": moduleName,
		"is_active":   true,
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now()}},
		},
	}
	n, err := r.modules.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleName, err)
	}
	return n > 0, nil
}

package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo UserRepository portunun MongoDB uygulaması.
type UserRepo struct {
	c collection[entity.User]
}

// NewUserRepository kullanıcı adaptörünü kurar.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{c: newCollection[entity.User](db, colUsers)}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.c.insert(ctx, u)
	if err == domain.ErrDuplicate {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail büyük/küçük harf duyarsız eşleşir.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}
	return r.c.findOne(ctx, bson.M{"email": pattern})
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	err := r.c.replace(ctx, bson.M{"_id": u.ID}, u, domain.ErrUserNotFound)
	if err == domain.ErrDuplicate {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.c.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login_at": at}}); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, page repository.Page) ([]*entity.User, int, error) {
	return r.c.findPage(ctx, bson.M{"company_id": companyID}, bson.D{{Key: "created_at", Value: -1}}, page)
}

func (r *UserRepo) ListByRoles(ctx context.Context, companyID string, roles []string) ([]*entity.User, error) {
	filter := bson.M{"company_id": companyID, "role": bson.M{"$in": roles}, "status": entity.UserActive}
	return r.c.findAll(ctx, filter, bson.D{{Key: "name", Value: 1}})
}

func (r *UserRepo) Delete(ctx context.Context, companyID, id string) error {
	ok, err := r.c.deleteOne(ctx, scoped(companyID, id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

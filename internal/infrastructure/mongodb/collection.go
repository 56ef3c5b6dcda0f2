package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// collection tek bir belge tipi için ortak CRUD yardımcıları.
type collection[T any] struct {
	coll *mongo.Collection
	name string
}

func newCollection[T any](db *mongo.Database, name string) collection[T] {
	return collection[T]{coll: db.Collection(name), name: name}
}

// isDuplicate E11000 (unique index) hatasını tanır.
func isDuplicate(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", c.name, err)
	}
	return nil
}

// insertIfAbsent filter'a uyan belge yoksa doc'u upsert ile ekler. Eklendiyse true döner.
func (c collection[T]) insertIfAbsent(ctx context.Context, filter bson.M, doc *T) (bool, error) {
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, fmt.Errorf("upsert %s: %w", c.name, err)
	}
	return res.UpsertedCount == 1, nil
}

// findOne bulunamazsa nil, nil döner.
func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	}
	return &doc, nil
}

func (c collection[T]) findAll(ctx context.Context, filter bson.M, sort bson.D) ([]*T, error) {
	cur, err := c.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	defer cur.Close(ctx)

	var list []*T
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		list = append(list, &doc)
	}
	return list, cur.Err()
}

// findPage sayfalı listeleme ve toplam sayım.
func (c collection[T]) findPage(ctx context.Context, filter bson.M, sort bson.D, page repository.Page) ([]*T, int, error) {
	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	opts := options.Find().
		SetSort(sort).
		SetLimit(int64(page.Limit)).
		SetSkip(int64(page.Offset))
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", c.name, err)
	}
	defer cur.Close(ctx)

	var list []*T
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", c.name, err)
		}
		list = append(list, &doc)
	}
	return list, int(total), cur.Err()
}

// replace belgeyi bütünüyle değiştirir; eşleşme yoksa notFound döner.
func (c collection[T]) replace(ctx context.Context, filter bson.M, doc *T, notFound error) error {
	res, err := c.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", c.name, err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func (c collection[T]) deleteOne(ctx context.Context, filter bson.M) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", c.name, err)
	}
	return res.DeletedCount > 0, nil
}

func (c collection[T]) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return int(n), nil
}

// scoped şirket kapsamlı _id filtresi.
func scoped(companyID, id string) bson.M {
	return bson.M{"company_id": companyID, "_id": id}
}

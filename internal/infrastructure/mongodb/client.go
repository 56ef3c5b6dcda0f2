package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/ik-portal/pkg/config"
)

// NewClient MongoDB'ye bağlanır ve bağlantıyı doğrular. decimal.Decimal
// alanları Decimal128 olarak saklanır.
func NewClient(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(NewRegistry()).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Open istemciyi kurar, indeksleri oluşturur ve veritabanını döner.
func Open(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	client, err := NewClient(ctx, cfg.URI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return client, db, nil
}

// supportsTransactions sunucu bir replica set üyesiyse true döner.
// Tek düğümlü (standalone) MongoDB çok belgeli işlemleri desteklemez.
func supportsTransactions(ctx context.Context, client *mongo.Client) bool {
	var res struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&res); err != nil {
		return false
	}
	return res.SetName != "" || res.Msg == "isdbgrid"
}

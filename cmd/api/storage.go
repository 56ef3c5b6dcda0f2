package main

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/internal/infrastructure/mongodb"
	"github.com/jhoicas/ik-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/ik-portal/pkg/config"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

// openStore STORAGE_DRIVER değerine göre kalıcılık katmanını açar.
// Dönen close fonksiyonu bağlantıları serbest bırakır.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, repository.TxRunner, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		client, db, err := mongodb.Open(ctx, cfg.Mongo)
		if err != nil {
			return repository.Store{}, nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB bağlantısı kuruldu")
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewStore(db), mongodb.NewTxRunner(client, db), closeFn, nil

	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return repository.Store{}, nil, nil, err
		}
		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return repository.Store{}, nil, nil, err
			}
			for _, name := range applied {
				log.Info().Str("migration", name).Msg("migration uygulandı")
			}
		}
		log.Info().Msg("PostgreSQL bağlantısı kuruldu")
		return postgres.NewStore(pool), postgres.NewTxRunner(pool), pool.Close, nil
	}
}

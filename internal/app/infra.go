package app

import (
	"context"
	"database/sql"

	"github.com/iambatul/sishairven/internal/config"
	"github.com/iambatul/sishairven/internal/db"
	"github.com/iambatul/sishairven/internal/logger"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB *db.DB
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	return &Infra{
		DB: &db.DB{DB: sqlDB},
	}, nil
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/consultation"
	"github.com/clinic/clinic/internal/domain/resource"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/mongodb"
)

// stores bundles the repositories of the selected backend with its health
// check and cleanup.
type stores struct {
	resources     resource.Repository
	consultations consultation.Repository
	health        echo.HandlerFunc
	closers       []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func poolConfig(cfg *config.Config) db.PoolConfig {
	return db.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, poolConfig(cfg))
		if err != nil {
			return nil, err
		}
		logger.Info().Int32("max_conns", cfg.DBMaxConns).Msg("connected to database")
		return &stores{
			resources:     resource.NewRepoPG(pool),
			consultations: consultation.NewRepoPG(pool),
			health:        db.HealthHandler(pool),
			closers:       []func(){pool.Close},
		}, nil

	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &stores{
			resources:     resource.NewRepoMongo(client),
			consultations: consultation.NewRepoMongo(client),
			health:        mongodb.HealthHandler(client),
			closers: []func(){func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Close(closeCtx); err != nil {
					logger.Warn().Err(err).Msg("mongodb disconnect failed")
				}
			}},
		}, nil

	case config.StoreMemory:
		return memoryStores(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func memoryStores() *stores {
	return &stores{
		resources:     resource.NewMemoryRepo(),
		consultations: consultation.NewMemoryRepo(),
		health: func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{
				"status": "healthy",
				"store":  config.StoreMemory,
			})
		},
	}
}

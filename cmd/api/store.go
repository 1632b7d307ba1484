package main

import (
	"context"
	"fmt"
	"time"

	"dishes-api/internal/config"
	"dishes-api/internal/database"
	"dishes-api/internal/repository"
	"dishes-api/internal/repository/memory"

	"github.com/rs/zerolog"
)

// store bundles the repositories of the selected backend.
type store struct {
	dishes repository.DishRepository
	users  repository.UserRepository
	pinger repository.Pinger
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*store, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		ms, err := database.NewMongoStore(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}

		dishes := repository.NewMongoDishRepository(ms.Database(), logger)
		if err := dishes.EnsureIndexes(ctx); err != nil {
			_ = ms.Close(context.Background())
			return nil, err
		}

		return &store{
			dishes: dishes,
			users:  repository.NewMongoUserRepository(ms.Database(), logger),
			pinger: ms,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := ms.Close(closeCtx); err != nil {
					logger.Error().Err(err).Msg("failed to disconnect from mongodb")
				}
			},
		}, nil

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}

		return &store{
			dishes: repository.NewPostgresDishRepository(pool, logger),
			users:  repository.NewPostgresUserRepository(pool, logger),
			pinger: pool,
			close:  pool.Close,
		}, nil

	case config.BackendMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		dishes := memory.NewDishRepository()
		return &store{
			dishes: dishes,
			users:  memory.NewUserRepository(),
			pinger: dishes,
			close:  func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

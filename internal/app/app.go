// Package app wires configuration into stores, services and the HTTP engine.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/roguepikachu/libraryual/internal/config"
	"github.com/roguepikachu/libraryual/internal/data"
	"github.com/roguepikachu/libraryual/internal/http/handler"
	"github.com/roguepikachu/libraryual/internal/http/middleware"
	"github.com/roguepikachu/libraryual/internal/http/router"
	"github.com/roguepikachu/libraryual/internal/repository"
	"github.com/roguepikachu/libraryual/internal/repository/cached"
	"github.com/roguepikachu/libraryual/internal/repository/fake"
	pgrepo "github.com/roguepikachu/libraryual/internal/repository/postgres"
	redisrepo "github.com/roguepikachu/libraryual/internal/repository/redis"
	"github.com/roguepikachu/libraryual/internal/service"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// App is a fully wired server.
type App struct {
	Engine *gin.Engine
	Store  repository.AuthorRepository

	pg    *pgxpool.Pool
	redis *redis.Client
}

// New builds the store selected by c.StoreBackend, optionally fronted by the
// Redis cache, and the engine serving it.
func New(ctx context.Context, c config.Config) (*App, error) {
	a := &App{}
	store, err := a.primaryStore(ctx, c)
	if err != nil {
		a.Close()
		return nil, err
	}
	if c.CacheEnabled {
		if a.redis == nil {
			a.redis = data.NewRedisClient(c)
		}
		store = cached.NewAuthorRepository(store, a.redis, c.CacheTTL)
		logger.Info(ctx, "author cache enabled, ttl=%s", c.CacheTTL)
	}
	a.Store = store

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.NewAuthorService(store)
	a.Engine = router.NewRouter(
		handler.NewAuthorHandler(svc),
		handler.NewHealthHandler(a.pg, a.redis),
		middleware.NewMetrics(reg),
	)
	return a, nil
}

func (a *App) primaryStore(ctx context.Context, c config.Config) (repository.AuthorRepository, error) {
	switch c.StoreBackend {
	case config.BackendMemory, "":
		logger.Info(ctx, "using in-memory author store")
		return fake.NewAuthorRepository(), nil
	case config.BackendPostgres:
		pool, err := data.NewPostgresPool(ctx, c)
		if err != nil {
			return nil, err
		}
		a.pg = pool
		repo := pgrepo.NewAuthorRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		logger.Info(ctx, "using postgres author store")
		return repo, nil
	case config.BackendRedis:
		a.redis = data.NewRedisClient(c)
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info(ctx, "using redis author store at %s", c.RedisAddr)
		return redisrepo.NewAuthorRepository(a.redis), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

// Close releases the backing connections.
func (a *App) Close() {
	if a.pg != nil {
		a.pg.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

package router

import (
	"context"

	"github.com/oksasatya/user-service/config"
	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/internal/container"
	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/internal/infrastructure/cache"
	"github.com/oksasatya/user-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-service/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/user-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/user-service/internal/interface/http"
	"github.com/oksasatya/user-service/internal/interface/middleware"
	"github.com/oksasatya/user-service/internal/router/modules"
	"github.com/oksasatya/user-service/pkg/helpers"
)

func buildUserRepository(cfg *config.Config) repository.UserRepository {
	if cfg.UseMemoryStore() || container.GetPGPool() == nil {
		return memory.NewUserRepository()
	}
	return pginfra.NewUserRepository(container.GetPGPool())
}

// buildHooks only sets the backends that are configured; a nil interface
// field means "skip".
func buildHooks(cfg *config.Config) *application.Hooks {
	hooks := &application.Hooks{Logger: container.GetLogger()}
	if rdb := container.GetRedis(); rdb != nil {
		hooks.Cache = cache.NewUserListCache(rdb, cfg.AppName, cfg.CacheListTTL)
	}
	if es := container.GetES(); es != nil {
		hooks.Index = search.NewUserIndex(es, cfg.ESUsersIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		hooks.Events = messaging.NewUserEventPublisher(pub)
	}
	return hooks
}

func buildUserModule(cfg *config.Config) *modules.UserModule {
	users := application.NewUsers(
		buildUserRepository(cfg),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		buildHooks(cfg),
	)
	handler := handlers.NewUserHandler(users, container.GetLogger())

	limiter := middleware.RateLimit(
		container.GetRedis(),
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		middleware.KeyByIP(cfg.AppName),
		nil,
		container.GetLogger(),
	)
	writeLimiter := middleware.RateLimit(
		container.GetRedis(),
		cfg.WriteRateLimitRequests,
		cfg.RateLimitWindow,
		middleware.KeyBySubject(cfg.AppName),
		nil,
		container.GetLogger(),
	)
	return modules.NewUserModule(handler, limiter, middleware.BearerAuth(container.GetTokenVerifier()), writeLimiter)
}

func buildDebugModule(cfg *config.Config) *modules.DebugModule {
	checks := map[string]modules.HealthCheck{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	limiter := middleware.RateLimit(
		container.GetRedis(), 120, cfg.RateLimitWindow*6,
		middleware.KeyByIPAndPath(cfg.AppName), middleware.AllowPrivateIP(), container.GetLogger(),
	)
	return modules.NewDebugModule(cfg.DebugMetricsEnabled, limiter, checks)
}

// InitModules wires every module from the container singletons. Call it once
// at startup after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	r.Add(buildUserModule(cfg), buildDebugModule(cfg))
}

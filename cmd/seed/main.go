package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-service/config"
	"github.com/oksasatya/user-service/internal/application"
	pginfra "github.com/oksasatya/user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/user-service/pkg/helpers"
)

// seed inserts a first user when the users table is empty. Running it again
// is a no-op.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2, MinConns: 1, MaxConnLife: time.Minute})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	repo := pginfra.NewUserRepository(pool)
	existing, err := repo.GetPage(ctx, 0, 1)
	if err != nil {
		logger.WithError(err).Fatal("failed to inspect users table")
	}
	if len(existing) > 0 {
		logger.Info("users table already populated, nothing to seed")
		return
	}

	users := application.NewUsers(repo, helpers.NewBcryptHasher(cfg.BcryptCost), &application.Hooks{Logger: logger})
	res := users.Create.Handle(ctx, application.CreateUserRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Password:  cfg.SeedPassword,
	})
	if res.IsFailed() {
		logger.WithField("errors", res.Messages()).Fatal("failed to seed user")
	}
	helpers.LogInfo(logger, "seeded user", logrus.Fields{"user_id": res.Value().ID, "email": res.Value().Email})
}

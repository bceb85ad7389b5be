package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-service/config"
	"github.com/oksasatya/user-service/internal/infrastructure/messaging"
	"github.com/oksasatya/user-service/pkg/helpers"
)

// Process-wide singletons built in main and read by the router when it wires
// modules. Optional backends stay nil when they are not configured.
var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client
	rabbitPub   *messaging.RabbitPublisher
	verifier    *helpers.TokenVerifier
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}
func SetPGPool(p *pgxpool.Pool)                 { pgPool = p }
func GetPGPool() *pgxpool.Pool                  { return pgPool }
func SetRedis(r *redis.Client)                  { redisClient = r }
func GetRedis() *redis.Client                   { return redisClient }
func SetES(c *elasticsearch.Client)             { esClient = c }
func GetES() *elasticsearch.Client              { return esClient }
func SetRabbitPub(p *messaging.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *messaging.RabbitPublisher  { return rabbitPub }
func SetTokenVerifier(v *helpers.TokenVerifier) { verifier = v }
func GetTokenVerifier() *helpers.TokenVerifier  { return verifier }

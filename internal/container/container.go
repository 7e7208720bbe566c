package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/config"
	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/internal/infrastructure/lock"
	"github.com/dealexpress/dealexpress-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	repos      repository.Set
	locker     application.Locker
	publisher  application.EventPublisher
)

func SetConfig(c *config.Config)                { cfg = c }
func GetConfig() *config.Config                 { return cfg }
func SetLogger(l *logrus.Logger)                { logger = l }
func SetPGPool(p *pgxpool.Pool)                 { pgPool = p }
func GetPGPool() *pgxpool.Pool                  { return pgPool }
func SetRedis(r *redis.Client)                  { redisClient = r }
func GetRedis() *redis.Client                   { return redisClient }
func SetJWT(m *helpers.JWTManager)              { jwtManager = m }
func GetJWT() *helpers.JWTManager               { return jwtManager }
func SetRepositories(s repository.Set)          { repos = s }
func GetRepositories() repository.Set           { return repos }
func SetLocker(l application.Locker)            { locker = l }
func SetPublisher(p application.EventPublisher) { publisher = p }

func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NewNopLogger()
}

// GetLocker falls back to an in-process keyed mutex when no distributed lock is set.
func GetLocker() application.Locker {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return locker
}

// GetPublisher falls back to dropping events when no broker is set.
func GetPublisher() application.EventPublisher {
	if publisher == nil {
		return application.NopPublisher{}
	}
	return publisher
}

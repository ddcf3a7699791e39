package container

import (
	"context"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
	"github.com/oksasatya/catalog-favorites/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/catalog-favorites/internal/infrastructure/postgres"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router modules auto-wire from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher

	reposOnce sync.Once
	repos     Repositories
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

// Repositories is the persistence bundle the services are built from.
type Repositories struct {
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Favorites repository.FavoriteRepository
	Tx        repository.TxManager
	// Ping reports store health.
	Ping func(ctx context.Context) error
}

// GetRepositories returns the postgres repositories when a pool was set,
// otherwise one shared in-memory store. The choice is made on first call.
func GetRepositories() Repositories {
	reposOnce.Do(func() {
		if pool := GetPGPool(); pool != nil {
			repos = Repositories{
				Users:     pginfra.NewUserRepository(pool),
				Products:  pginfra.NewProductRepository(pool),
				Favorites: pginfra.NewFavoriteRepository(pool),
				Tx:        pginfra.NewTxManager(pool),
				Ping:      pool.Ping,
			}
			return
		}
		s := memory.NewStore()
		repos = Repositories{
			Users:     s.Users(),
			Products:  s.Products(),
			Favorites: s.Favorites(),
			Tx:        s.TxManager(),
			Ping:      func(context.Context) error { return nil },
		}
	})
	return repos
}

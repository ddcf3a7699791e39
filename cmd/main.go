package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/container"
	pginfra "github.com/oksasatya/catalog-favorites/internal/infrastructure/postgres"
	"github.com/oksasatya/catalog-favorites/internal/interface/middleware"
	"github.com/oksasatya/catalog-favorites/internal/router"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
	"github.com/oksasatya/catalog-favorites/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, pginfra.PoolOptionsFrom(cfg))
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if rdb := connectRedis(ctx, cfg, logger); rdb != nil {
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else {
			container.SetES(es)
		}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.AccessLog(logger))
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Remaining"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	reg.Use(middleware.RateLimit(container.GetRedis(), 600, time.Minute, middleware.KeyByIP(), middleware.AllowPaths("/api/health")))
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s (store=%s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// connectRedis returns nil when Redis is not configured or not reachable;
// the product cache and rate limits are then skipped.
func connectRedis(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(c).Err(); err != nil {
		logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable; cache and rate limits disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

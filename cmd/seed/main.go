package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/application"
	"github.com/oksasatya/catalog-favorites/internal/container"
	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	pginfra "github.com/oksasatya/catalog-favorites/internal/infrastructure/postgres"
	"github.com/oksasatya/catalog-favorites/internal/router"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
)

type seedProduct struct {
	entity.Product
	image string // file name under SEED_IMAGES_DIR
}

var catalog = []seedProduct{
	{entity.Product{Name: "Desk Lamp", Description: "Adjustable LED desk lamp", Price: 34.90, Category: "home", IsAvailable: true}, "desk-lamp.jpg"},
	{entity.Product{Name: "Standing Desk", Description: "Electric height-adjustable desk", Price: 489.00, Category: "office", IsAvailable: true}, "standing-desk.jpg"},
	{entity.Product{Name: "Ergonomic Chair", Description: "Mesh chair with lumbar support", Price: 259.00, Category: "office", IsAvailable: true}, "chair.jpg"},
	{entity.Product{Name: "Ceramic Mug", Description: "350ml stoneware mug", Price: 9.50, Category: "kitchen", IsAvailable: true}, "mug.jpg"},
	{entity.Product{Name: "Espresso Machine", Description: "15 bar pump espresso maker", Price: 199.99, Category: "kitchen", IsAvailable: false}, "espresso.jpg"},
	{entity.Product{Name: "Wool Throw", Description: "Merino wool blanket", Price: 79.00, Category: "home", IsAvailable: true}, "throw.jpg"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if cfg.StoreDriver != config.StorePostgres {
		log.Fatalf("seeding needs STORE_DRIVER=%s", config.StorePostgres)
	}
	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptionsFrom(cfg))
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch: %v", err)
		}
		container.SetES(es)
	}

	var gcs *storage.Client
	if cfg.GCSBucket != "" && cfg.SeedImagesDir != "" {
		gcs, err = helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcs.Close() }()
	}

	svc := router.BuildServices()
	if err := svc.Catalog.EnsureIndex(ctx); err != nil {
		log.Fatalf("failed to ensure search index: %v", err)
	}

	if err := seedProducts(ctx, cfg, svc.Catalog, gcs, logger); err != nil {
		log.Fatalf("failed to seed products: %v", err)
	}
	seedDemoUser(ctx, svc.Accounts, logger)
}

func seedProducts(ctx context.Context, cfg *config.Config, cat *application.CatalogService, gcs *storage.Client, logger *logrus.Logger) error {
	existing, err := cat.ListProducts(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[strings.ToLower(p.Name)] = true
	}

	for _, sp := range catalog {
		if have[strings.ToLower(sp.Name)] {
			logger.WithField("name", sp.Name).Info("product exists, skipping")
			continue
		}
		p := sp.Product
		if gcs != nil {
			path := filepath.Join(cfg.SeedImagesDir, sp.image)
			if _, err := os.Stat(path); err == nil {
				url, err := helpers.UploadFile(ctx, gcs, cfg.GCSBucket, "products/"+sp.image, path)
				if err != nil {
					return err
				}
				p.ImageURL = url
			} else {
				logger.WithField("path", path).Warn("seed image missing")
			}
		}
		if err := cat.SaveProduct(ctx, &p); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"id": p.ID, "name": p.Name}).Info("seeded product")
	}
	return nil
}

func seedDemoUser(ctx context.Context, accounts *application.AccountService, logger *logrus.Logger) {
	const (
		email    = "demo@example.com"
		password = "password123"
	)
	u, err := accounts.Register(ctx, application.RegisterInput{
		Username: "demo",
		Name:     "Demo User",
		Email:    email,
		Phone:    "+15550100",
		Password: password,
	})
	if errors.Is(err, apperr.ErrConflict) {
		logger.WithField("email", email).Info("demo user exists, skipping")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": email, "password": password}).Info("seeded demo user")
}

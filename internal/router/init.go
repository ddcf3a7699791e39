package router

import (
	"context"

	"github.com/oksasatya/catalog-favorites/internal/application"
	"github.com/oksasatya/catalog-favorites/internal/container"
	handlers "github.com/oksasatya/catalog-favorites/internal/interface/http"
	"github.com/oksasatya/catalog-favorites/internal/router/modules"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
)

type Services struct {
	Accounts  *application.AccountService
	Favorites *application.FavoriteService
	Catalog   *application.CatalogService
}

// BuildServices wires the application services from the container.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := container.GetRepositories()

	// a nil *RabbitPublisher must stay a nil interface
	var mail application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		mail = pub
	}

	return Services{
		Accounts: application.NewAccountService(
			repos.Users,
			repos.Tx,
			helpers.NewBcryptHasher(cfg.BcryptCost),
			logger,
			mail,
			cfg,
		),
		Favorites: application.NewFavoriteService(repos.Users, repos.Products, repos.Favorites, repos.Tx, logger),
		Catalog: application.NewCatalogService(
			repos.Products,
			container.GetRedis(),
			cfg.ProductCacheTTL,
			container.GetES(),
			cfg.ESProductsIndex,
			logger,
		),
	}
}

func healthChecks() map[string]handlers.Check {
	checks := map[string]handlers.Check{
		"store": container.GetRepositories().Ping,
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()

	r.Add(modules.NewUserModule(
		handlers.NewUserHandler(svc.Accounts, svc.Favorites, logger),
		handlers.NewFavoriteHandler(svc.Favorites, logger),
	))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(svc.Catalog, logger)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks())))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

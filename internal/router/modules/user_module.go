package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-favorites/internal/container"
	handlers "github.com/oksasatya/catalog-favorites/internal/interface/http"
	"github.com/oksasatya/catalog-favorites/internal/interface/middleware"
)

// UserModule wires account and saved-product routes:
// POST /users/register, POST /users/login, GET /users/:id,
// POST /users/:id/saved/:productId, GET /users/:id/saved(-products),
// GET /users/:id/saved/:productId/status.
type UserModule struct {
	Users     *handlers.UserHandler
	Favorites *handlers.FavoriteHandler
}

func NewUserModule(users *handlers.UserHandler, favorites *handlers.FavoriteHandler) *UserModule {
	return &UserModule{Users: users, Favorites: favorites}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	toggleLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserParam(), nil)

	rg.POST("/users/register", registerLimiter, m.Users.Register)
	rg.POST("/users/login", loginLimiter, m.Users.Login)
	rg.GET("/users/:id", m.Users.Get)

	rg.POST("/users/:id/saved/:productId", toggleLimiter, m.Favorites.SetSaved)
	rg.GET("/users/:id/saved", m.Favorites.List)
	rg.GET("/users/:id/saved-products", m.Favorites.List)
	rg.GET("/users/:id/saved/:productId/status", m.Favorites.Status)
}

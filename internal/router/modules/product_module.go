package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/catalog-favorites/internal/interface/http"
)

type ProductModule struct {
	Handler *handlers.ProductHandler
}

func NewProductModule(h *handlers.ProductHandler) *ProductModule {
	return &ProductModule{Handler: h}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	rg.GET("/products", m.Handler.List)
	rg.GET("/products/available", m.Handler.Available)
	rg.GET("/products/search", m.Handler.Search)
	rg.GET("/products/top", m.Handler.Top)
	rg.GET("/products/:id", m.Handler.Get)
}

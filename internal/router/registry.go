package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-favorites/pkg/response"
)

// Registry collects modules and the middleware shared by every /api route.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies the shared middleware, mounts every module and answers
// unknown routes with the standard envelope.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", response.ErrorBody{Code: "not_found"})
	})
}

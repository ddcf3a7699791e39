package router

import "github.com/gin-gonic/gin"

// Module is a feature that mounts its routes under /api.
type Module interface {
	Register(rg *gin.RouterGroup)
}

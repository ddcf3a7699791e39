package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/internal/application"
	"github.com/oksasatya/catalog-favorites/pkg/response"
)

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, products, "Products", map[string]any{"count": len(products)})
}

func (h *ProductHandler) Available(c *gin.Context) {
	products, err := h.Svc.ListAvailable(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, products, "Available products", map[string]any{"count": len(products)})
}

func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	products, err := h.Svc.Search(c.Request.Context(), q, queryInt(c, "size"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, products, "Search results", map[string]any{"q": q, "count": len(products)})
}

// Top returns the most expensive products; ?limit= defaults to 10.
func (h *ProductHandler) Top(c *gin.Context) {
	products, err := h.Svc.TopExpensive(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, products, "Top products", nil)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Product retrieved", nil)
}

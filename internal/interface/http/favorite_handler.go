package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/internal/application"
	"github.com/oksasatya/catalog-favorites/pkg/response"
)

type FavoriteHandler struct {
	Svc    *application.FavoriteService
	Logger *logrus.Logger
}

func NewFavoriteHandler(svc *application.FavoriteService, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Svc: svc, Logger: logger}
}

type savedStatus struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	IsSaved   bool   `json:"isSaved"`
}

// saveParam reads ?save=, falling back to the older ?saveProduct=. Absent means true.
func saveParam(c *gin.Context) (bool, bool) {
	raw, ok := c.GetQuery("save")
	if !ok {
		raw, ok = c.GetQuery("saveProduct")
	}
	if !ok || raw == "" {
		return true, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// SetSaved handles POST /users/:id/saved/:productId?save=true|false.
func (h *FavoriteHandler) SetSaved(c *gin.Context) {
	save, ok := saveParam(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "save must be true or false", response.ErrorBody{Code: "invalid_request"})
		return
	}

	view, err := h.Svc.SetSavedStatus(c.Request.Context(), c.Param("id"), c.Param("productId"), save)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	msg := "Product saved"
	if !save {
		msg = "Product removed from saved"
	}
	response.Success(c, http.StatusOK, view, msg, nil)
}

func (h *FavoriteHandler) List(c *gin.Context) {
	products, err := h.Svc.ListSavedProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, products, "Saved products", map[string]any{"count": len(products)})
}

func (h *FavoriteHandler) Status(c *gin.Context) {
	userID, productID := c.Param("id"), c.Param("productId")
	saved, err := h.Svc.IsSaved(c.Request.Context(), userID, productID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, savedStatus{UserID: userID, ProductID: productID, IsSaved: saved}, "Saved status", nil)
}

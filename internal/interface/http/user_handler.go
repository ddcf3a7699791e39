package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/internal/application"
	"github.com/oksasatya/catalog-favorites/pkg/response"
	"github.com/oksasatya/catalog-favorites/pkg/validation"
)

type UserHandler struct {
	Accounts  *application.AccountService
	Favorites *application.FavoriteService
	Logger    *logrus.Logger
}

func NewUserHandler(accounts *application.AccountService, favorites *application.FavoriteService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Accounts: accounts, Favorites: favorites, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid payload", response.ErrorBody{Code: "invalid_request", Details: validation.ToDetails(err)})
		return
	}

	ctx := c.Request.Context()
	u, err := h.Accounts.Register(ctx, application.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	view, err := h.Favorites.ViewOf(ctx, u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "Registration successful", nil)
}

// Login answers 401 with the same message for unknown email and wrong password.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid payload", response.ErrorBody{Code: "invalid_request", Details: validation.ToDetails(err)})
		return
	}

	ctx := c.Request.Context()
	u, err := h.Accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	view, err := h.Favorites.ViewOf(ctx, u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "Login successful", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := h.Accounts.GetUser(ctx, c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	view, err := h.Favorites.ViewOf(ctx, u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "User retrieved", nil)
}

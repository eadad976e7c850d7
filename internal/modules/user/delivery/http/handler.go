package handler

import (
	"net/http"

	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/internal/modules/user/dto"
	user "anoa.com/bookcommunity/internal/modules/user/service"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService user.AuthService
}

func NewAuthHandler(authService user.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Authenticated {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.authService.Me(c.Request.Context(), actor.UserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

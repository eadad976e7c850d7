package handler

import (
	"net/http"

	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/internal/modules/admin/dto"
	adminService "anoa.com/bookcommunity/internal/modules/admin/service"
	"anoa.com/bookcommunity/pkg/apperror"
	commonDto "anoa.com/bookcommunity/pkg/dto"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.adminService.ListUsers(c.Request.Context(), middleware.ActorFromContext(c), page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var uri dto.UserURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	userID, err := uuid.Parse(uri.ID)
	if err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var input dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.adminService.UpdateUserRole(c.Request.Context(), middleware.ActorFromContext(c), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

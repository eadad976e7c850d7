package handler

import (
	"net/http"

	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/internal/modules/category/dto"
	category "anoa.com/bookcommunity/internal/modules/category/service"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(service category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// GetAllCategories lists every category as a plain array.
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	var uri dto.CategoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	res, err := h.service.GetCategory(c.Request.Context(), uri.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.CreateCategory(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var uri dto.CategoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.UpdateCategory(c.Request.Context(), middleware.ActorFromContext(c), uri.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CategoryHandler) PatchCategory(c *gin.Context) {
	var uri dto.CategoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var req dto.PatchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.PatchCategory(c.Request.Context(), middleware.ActorFromContext(c), uri.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	var uri dto.CategoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), middleware.ActorFromContext(c), uri.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

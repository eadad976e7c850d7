package handler

import (
	"net/http"

	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/internal/modules/bookcase/dto"
	bookcase "anoa.com/bookcommunity/internal/modules/bookcase/service"
	"anoa.com/bookcommunity/pkg/apperror"
	commonDto "anoa.com/bookcommunity/pkg/dto"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
)

type BookCaseHandler struct {
	service bookcase.Service
}

func NewBookCaseHandler(service bookcase.Service) *BookCaseHandler {
	return &BookCaseHandler{service: service}
}

// ScopeOwnBookCase memoises the actor's bookcase for the rest of the request.
func ScopeOwnBookCase() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(bookcase.WithOwnBookCase(c.Request.Context()))
		c.Next()
	}
}

func (h *BookCaseHandler) ListBookCases(c *gin.Context) {
	res, err := h.service.ListBookCases(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookCaseHandler) GetBookCase(c *gin.Context) {
	var uri dto.BookCaseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	res, err := h.service.GetBookCase(c.Request.Context(), middleware.ActorFromContext(c), uri.BookCaseID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookCaseHandler) DeleteBookCase(c *gin.Context) {
	var uri dto.BookCaseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	if err := h.service.DeleteBookCase(c.Request.Context(), middleware.ActorFromContext(c), uri.BookCaseID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Items on the actor's own bookcase.

func (h *BookCaseHandler) ListOwnItems(c *gin.Context) {
	h.listItems(c, bookcase.OwnScope(middleware.ActorFromContext(c)))
}

func (h *BookCaseHandler) GetOwnItem(c *gin.Context) {
	var uri dto.ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.getItem(c, bookcase.OwnScope(middleware.ActorFromContext(c)), uri.ItemID)
}

func (h *BookCaseHandler) CreateOwnItem(c *gin.Context) {
	h.createItem(c, bookcase.OwnScope(middleware.ActorFromContext(c)))
}

func (h *BookCaseHandler) ReplaceOwnItem(c *gin.Context) {
	var uri dto.ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.replaceItem(c, bookcase.OwnScope(middleware.ActorFromContext(c)), uri.ItemID)
}

func (h *BookCaseHandler) PatchOwnItem(c *gin.Context) {
	var uri dto.ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.patchItem(c, bookcase.OwnScope(middleware.ActorFromContext(c)), uri.ItemID)
}

func (h *BookCaseHandler) DeleteOwnItem(c *gin.Context) {
	var uri dto.ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.deleteItem(c, bookcase.OwnScope(middleware.ActorFromContext(c)), uri.ItemID)
}

// Items on any bookcase, admin only.

func (h *BookCaseHandler) ListItems(c *gin.Context) {
	var uri dto.BookCaseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.listItems(c, bookcase.AdminScope(middleware.ActorFromContext(c), uri.BookCaseID))
}

func (h *BookCaseHandler) GetItem(c *gin.Context) {
	var uri dto.AdminItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.getItem(c, bookcase.AdminScope(middleware.ActorFromContext(c), uri.BookCaseID), uri.ItemID)
}

func (h *BookCaseHandler) CreateItem(c *gin.Context) {
	var uri dto.BookCaseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.createItem(c, bookcase.AdminScope(middleware.ActorFromContext(c), uri.BookCaseID))
}

func (h *BookCaseHandler) ReplaceItem(c *gin.Context) {
	var uri dto.AdminItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.replaceItem(c, bookcase.AdminScope(middleware.ActorFromContext(c), uri.BookCaseID), uri.ItemID)
}

func (h *BookCaseHandler) PatchItem(c *gin.Context) {
	var uri dto.AdminItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.patchItem(c, bookcase.AdminScope(middleware.ActorFromContext(c), uri.BookCaseID), uri.ItemID)
}

func (h *BookCaseHandler) DeleteItem(c *gin.Context) {
	var uri dto.AdminItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}
	h.deleteItem(c, bookcase.AdminScope(middleware.ActorFromContext(c), uri.BookCaseID), uri.ItemID)
}

func (h *BookCaseHandler) listItems(c *gin.Context, scope bookcase.Scope) {
	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ListItems(c.Request.Context(), scope, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookCaseHandler) getItem(c *gin.Context, scope bookcase.Scope, itemID uint) {
	res, err := h.service.GetItem(c.Request.Context(), scope, itemID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookCaseHandler) createItem(c *gin.Context, scope bookcase.Scope) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.CreateItem(c.Request.Context(), scope, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *BookCaseHandler) replaceItem(c *gin.Context, scope bookcase.Scope, itemID uint) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.UpdateItem(c.Request.Context(), scope, itemID, req.Patch())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookCaseHandler) patchItem(c *gin.Context, scope bookcase.Scope, itemID uint) {
	var req dto.PatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.UpdateItem(c.Request.Context(), scope, itemID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookCaseHandler) deleteItem(c *gin.Context, scope bookcase.Scope, itemID uint) {
	if err := h.service.DeleteItem(c.Request.Context(), scope, itemID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

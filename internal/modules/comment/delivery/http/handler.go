package handler

import (
	"errors"
	"fmt"
	"net/http"

	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/internal/modules/comment/dto"
	comment "anoa.com/bookcommunity/internal/modules/comment/service"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/ratelimiter"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), uri.BookID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	var uri dto.CommentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	res, err := h.service.GetComment(c.Request.Context(), uri.BookID, uri.CommentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.CreateComment(c.Request.Context(), middleware.ActorFromContext(c), uri.BookID, req)
	if err != nil {
		var rateLimitErr *ratelimiter.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var uri dto.CommentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.UpdateComment(c.Request.Context(), middleware.ActorFromContext(c), uri.BookID, uri.CommentID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	var uri dto.CommentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), middleware.ActorFromContext(c), uri.BookID, uri.CommentID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

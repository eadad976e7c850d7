package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/internal/modules/book/dto"
	book "anoa.com/bookcommunity/internal/modules/book/service"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
)

var coverExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.BookListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) SearchBooks(c *gin.Context) {
	var query dto.BookSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	books, err := h.service.SearchBooks(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	res, err := h.service.GetBook(c.Request.Context(), uri.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// CreateBook accepts JSON, or multipart form data with an optional "cover" file.
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}

	var cover *dto.CoverFile
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("cover")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			response.ResponseError(c, apperror.Validation("cover: invalid upload"))
			return
		default:
			if !coverExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
				response.ResponseError(c, apperror.Validation("cover: upload a valid image"))
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				response.ResponseError(c, err)
				return
			}
			defer file.Close()
			cover = &dto.CoverFile{Reader: file, FileName: fileHeader.Filename}
		}
	}

	res, err := h.service.CreateBook(c.Request.Context(), middleware.ActorFromContext(c), req, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), middleware.ActorFromContext(c), uri.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

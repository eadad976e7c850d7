package dto

import (
	"io"

	"anoa.com/bookcommunity/internal/entity"
	commonDto "anoa.com/bookcommunity/pkg/dto"
)

// CoverFile is an uploaded cover image.
type CoverFile struct {
	Reader   io.Reader
	FileName string
}

type CreateBookRequest struct {
	Name         string `json:"name" form:"name" binding:"required,max=250"`
	Cover        string `json:"cover" form:"-" binding:"omitempty,url"`
	Description  string `json:"description" form:"description" binding:"required"`
	Category     string `json:"category" form:"category" binding:"required,max=250"`
	Score        int    `json:"score" form:"score" binding:"required,min=1,max=5"`
	Author       string `json:"author" form:"author" binding:"required,max=250"`
	Publications string `json:"publications" form:"publications" binding:"required,max=250"`
	NumOfPages   int    `json:"num_of_pages" form:"num_of_pages" binding:"required,min=1"`
	DateWrited   string `json:"date_writed" form:"date_writed" binding:"required,datetime=2006-01-02"`
}

type BookListQuery struct {
	commonDto.PageQuery
	Search       string `form:"search"`
	Category     *uint  `form:"category"`
	Score        *int   `form:"score" binding:"omitempty,min=1,max=5"`
	Author       string `form:"author"`
	Publications string `form:"publications"`
	Ordering     string `form:"ordering"`
}

type BookSearchQuery struct {
	commonDto.PageQuery
	Q string `form:"q"`
}

type BookURI struct {
	ID uint `uri:"book_id" binding:"required,min=1"`
}

type BookResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Cover        string `json:"cover"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Score        int    `json:"score"`
	Author       string `json:"author"`
	Publications string `json:"publications"`
	NumOfPages   int    `json:"num_of_pages"`
	DateWrited   string `json:"date_writed"`
}

// NewBookResponse expects book.Category to be loaded.
func NewBookResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ID:           book.ID,
		Name:         book.Name,
		Cover:        book.Cover,
		Description:  book.Description,
		Category:     book.Category.Title,
		Score:        book.Score,
		Author:       book.Author,
		Publications: book.Publications,
		NumOfPages:   book.NumOfPages,
		DateWrited:   book.DateWrited.Format(entity.DateLayout),
	}
}

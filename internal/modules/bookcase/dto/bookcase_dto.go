package dto

import (
	"time"

	"anoa.com/bookcommunity/internal/entity"
	bookDto "anoa.com/bookcommunity/internal/modules/book/dto"
)

const DuplicateItemMessage = "This book has already been added to your personal library."

type ItemRequest struct {
	Book   uint   `json:"book" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=ur r ir wr"`
}

type PatchItemRequest struct {
	Book   *uint   `json:"book" binding:"omitempty,min=1"`
	Status *string `json:"status" binding:"omitempty,oneof=ur r ir wr"`
}

// Patch converts a full replacement into a patch touching every field.
func (r ItemRequest) Patch() PatchItemRequest {
	status := r.Status
	if status == "" {
		status = entity.ItemWantRead
	}
	book := r.Book
	return PatchItemRequest{Book: &book, Status: &status}
}

type BookCaseURI struct {
	BookCaseID uint `uri:"bookcase_id" binding:"required"`
}

type ItemURI struct {
	ItemID uint `uri:"item_id" binding:"required"`
}

type AdminItemURI struct {
	BookCaseID uint `uri:"bookcase_id" binding:"required"`
	ItemID     uint `uri:"item_id" binding:"required"`
}

type ItemResponse struct {
	ID            uint                 `json:"id"`
	Book          bookDto.BookResponse `json:"book"`
	Status        string               `json:"status"`
	DatetimeAdded time.Time            `json:"datetime_added"`
}

type BookCaseResponse struct {
	ID    uint           `json:"id"`
	User  string         `json:"user"`
	Items []ItemResponse `json:"items"`
}

func NewItemResponse(item *entity.BookCaseItem) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Book:          bookDto.NewBookResponse(&item.Book),
		Status:        item.Status,
		DatetimeAdded: item.DatetimeAdded,
	}
}

func NewBookCaseResponse(bookCase *entity.BookCase) BookCaseResponse {
	items := make([]ItemResponse, 0, len(bookCase.Items))
	for i := range bookCase.Items {
		items = append(items, NewItemResponse(&bookCase.Items[i]))
	}
	return BookCaseResponse{
		ID:    bookCase.ID,
		User:  bookCase.User.Username,
		Items: items,
	}
}

package dto

import (
	"bytes"
	"encoding/json"

	"anoa.com/bookcommunity/internal/entity"
)

// NullableString tells an absent JSON key apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// CategoryRequest is the body of create and full update.
type CategoryRequest struct {
	Title       string  `json:"title" binding:"required,max=250"`
	Description string  `json:"description" binding:"required"`
	TopBook     *string `json:"top_book" binding:"omitempty,max=250"`
}

type PatchCategoryRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=250"`
	Description *string        `json:"description" binding:"omitempty,min=1"`
	TopBook     NullableString `json:"top_book"`
}

type CategoryURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

type CategoryResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TopBook     *string `json:"top_book"`
}

// NewCategoryResponse expects category.TopBook to be loaded when set.
func NewCategoryResponse(category *entity.Category) CategoryResponse {
	res := CategoryResponse{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
	}
	if category.TopBook != nil {
		name := category.TopBook.Name
		res.TopBook = &name
	}
	return res
}

package dto

import (
	"time"

	"anoa.com/bookcommunity/internal/entity"
	commonDto "anoa.com/bookcommunity/pkg/dto"
)

// CreateCommentRequest only carries the body; user and status are assigned
// by the server.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type UpdateCommentRequest struct {
	Body *string `json:"body" binding:"omitempty,min=1"`
}

type CommentListQuery struct {
	commonDto.PageQuery
	Ordering string `form:"ordering"`
}

type BookURI struct {
	BookID uint `uri:"book_id" binding:"required"`
}

type CommentURI struct {
	BookID    uint `uri:"book_id" binding:"required"`
	CommentID uint `uri:"comment_id" binding:"required"`
}

type CommentResponse struct {
	ID              uint      `json:"id"`
	User            string    `json:"user"`
	Status          string    `json:"status"`
	Body            string    `json:"body"`
	DatetimeCreated time.Time `json:"datetime_created"`
}

func NewCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:              comment.ID,
		User:            comment.User.Username,
		Status:          comment.Status,
		Body:            comment.Body,
		DatetimeCreated: comment.DatetimeCreated,
	}
}

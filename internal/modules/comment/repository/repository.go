package repository

import (
	"context"

	"anoa.com/bookcommunity/internal/entity"
	"gorm.io/gorm"
)

var orderings = map[string]string{
	"datetime_created":  "datetime_created ASC, id ASC",
	"-datetime_created": "datetime_created DESC, id DESC",
}

type CommentFilter struct {
	BookID   uint
	Ordering string
	Offset   int
	Limit    int
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// FindByID only matches comments attached to bookID.
	FindByID(ctx context.Context, bookID, id uint) (*entity.Comment, error)
	FindByBook(ctx context.Context, filter CommentFilter) ([]entity.Comment, int64, error)
	UpdateBody(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Omit("User", "Book").Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, bookID, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByBook(ctx context.Context, filter CommentFilter) ([]entity.Comment, int64, error) {
	var (
		comments []entity.Comment
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("book_id = ?", filter.BookID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = "id ASC"
	}

	err := query.
		Preload("User").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateBody(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Where("id = ?", comment.ID).
		Update("body", comment.Body).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

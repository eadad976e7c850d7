package repository

import (
	"context"

	"anoa.com/bookcommunity/internal/entity"
	"gorm.io/gorm"
)

type StatRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountBooks(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountCommentsByStatus(ctx context.Context, status string) (int64, error)
	CountBookCaseItems(ctx context.Context) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.User{})
}

func (r *statRepository) CountBooks(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.Book{})
}

func (r *statRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.Category{})
}

func (r *statRepository) CountCommentsByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *statRepository) CountBookCaseItems(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.BookCaseItem{})
}

func (r *statRepository) count(ctx context.Context, model any) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(model).Count(&total).Error
	return total, err
}

package repository

import (
	"context"

	"anoa.com/bookcommunity/internal/entity"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uint) (*entity.Category, error)
	FindAll(ctx context.Context) ([]entity.Category, error)
	// FindByTitle returns at most limit categories with exactly this title.
	FindByTitle(ctx context.Context, title string, limit int) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uint) error
	CountBooks(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Omit("TopBook").Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).
		Preload("TopBook").
		First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).
		Preload("TopBook").
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByTitle(ctx context.Context, title string, limit int) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).
		Where("title = ?", title).
		Order("id ASC").
		Limit(limit).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).
		Model(category).
		Select("Title", "Description", "TopBookID").
		Updates(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) CountBooks(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

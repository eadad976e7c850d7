package repository

import (
	"context"

	"anoa.com/bookcommunity/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookCaseFilter struct {
	// UserID restricts the listing to one owner when set.
	UserID *uuid.UUID
}

type BookCaseRepository interface {
	FindAll(ctx context.Context, filter BookCaseFilter) ([]entity.BookCase, error)
	FindByID(ctx context.Context, id uint) (*entity.BookCase, error)
	FindDetailByID(ctx context.Context, id uint) (*entity.BookCase, error)
	// EnsureForUser returns the user's bookcase, creating it if missing.
	EnsureForUser(ctx context.Context, userID uuid.UUID) (*entity.BookCase, error)

	ListItems(ctx context.Context, bookCaseID uint, offset, limit int) ([]entity.BookCaseItem, int64, error)
	FindItem(ctx context.Context, bookCaseID, itemID uint) (*entity.BookCaseItem, error)
	// ItemExists reports whether bookID is already on the bookcase, ignoring excludeItemID.
	ItemExists(ctx context.Context, bookCaseID, bookID, excludeItemID uint) (bool, error)
	CreateItem(ctx context.Context, item *entity.BookCaseItem) error
	UpdateItem(ctx context.Context, item *entity.BookCaseItem) error
	DeleteItem(ctx context.Context, bookCaseID, itemID uint) error
}

type bookCaseRepository struct {
	db *gorm.DB
}

func NewBookCaseRepository(db *gorm.DB) BookCaseRepository {
	return &bookCaseRepository{db: db}
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("bookcase_items.id ASC")
		}).
		Preload("Items.Book.Category")
}

func (r *bookCaseRepository) FindAll(ctx context.Context, filter BookCaseFilter) ([]entity.BookCase, error) {
	var bookCases []entity.BookCase

	query := r.db.WithContext(ctx).Model(&entity.BookCase{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if err := withDetail(query).Order("id ASC").Find(&bookCases).Error; err != nil {
		return nil, err
	}
	return bookCases, nil
}

func (r *bookCaseRepository) FindByID(ctx context.Context, id uint) (*entity.BookCase, error) {
	var bookCase entity.BookCase
	if err := r.db.WithContext(ctx).First(&bookCase, id).Error; err != nil {
		return nil, err
	}
	return &bookCase, nil
}

func (r *bookCaseRepository) FindDetailByID(ctx context.Context, id uint) (*entity.BookCase, error) {
	var bookCase entity.BookCase
	if err := withDetail(r.db.WithContext(ctx)).First(&bookCase, id).Error; err != nil {
		return nil, err
	}
	return &bookCase, nil
}

func (r *bookCaseRepository) EnsureForUser(ctx context.Context, userID uuid.UUID) (*entity.BookCase, error) {
	var bookCase entity.BookCase
	err := r.db.WithContext(ctx).
		Where(entity.BookCase{UserID: userID}).
		FirstOrCreate(&bookCase).Error
	if err != nil {
		return nil, err
	}
	return &bookCase, nil
}

func (r *bookCaseRepository) ListItems(ctx context.Context, bookCaseID uint, offset, limit int) ([]entity.BookCaseItem, int64, error) {
	var (
		items []entity.BookCaseItem
		total int64
	)

	query := r.db.WithContext(ctx).Model(&entity.BookCaseItem{}).Where("bookcase_id = ?", bookCaseID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Book.Category").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *bookCaseRepository) FindItem(ctx context.Context, bookCaseID, itemID uint) (*entity.BookCaseItem, error) {
	var item entity.BookCaseItem
	err := r.db.WithContext(ctx).
		Preload("Book.Category").
		Where("bookcase_id = ?", bookCaseID).
		First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *bookCaseRepository) ItemExists(ctx context.Context, bookCaseID, bookID, excludeItemID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entity.BookCaseItem{}).
		Where("bookcase_id = ? AND book_id = ?", bookCaseID, bookID)
	if excludeItemID != 0 {
		query = query.Where("id <> ?", excludeItemID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookCaseRepository) CreateItem(ctx context.Context, item *entity.BookCaseItem) error {
	return r.db.WithContext(ctx).Omit("BookCase", "Book").Create(item).Error
}

func (r *bookCaseRepository) UpdateItem(ctx context.Context, item *entity.BookCaseItem) error {
	return r.db.WithContext(ctx).
		Model(&entity.BookCaseItem{}).
		Where("id = ? AND bookcase_id = ?", item.ID, item.BookCaseID).
		Updates(map[string]any{
			"book_id": item.BookID,
			"status":  item.Status,
		}).Error
}

func (r *bookCaseRepository) DeleteItem(ctx context.Context, bookCaseID, itemID uint) error {
	result := r.db.WithContext(ctx).
		Where("bookcase_id = ?", bookCaseID).
		Delete(&entity.BookCaseItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

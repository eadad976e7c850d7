package repository

import (
	"context"
	"strings"

	"anoa.com/bookcommunity/internal/entity"
	"gorm.io/gorm"
)

// BookFilter narrows a book listing. Zero values are ignored.
type BookFilter struct {
	Search       string
	CategoryID   *uint
	Score        *int
	Author       string
	Publications string
	Ordering     string
	Offset       int
	Limit        int
}

// likeEscaper makes LIKE wildcards match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var orderings = map[string]string{
	"name":   "books.name ASC",
	"-name":  "books.name DESC",
	"score":  "books.score ASC",
	"-score": "books.score DESC",
}

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id uint) (*entity.Book, error)
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Book, error)
	FindAll(ctx context.Context, filter BookFilter) ([]entity.Book, int64, error)
	// FindByName returns at most limit books with exactly this name.
	FindByName(ctx context.Context, name string, limit int) ([]entity.Book, error)
	FindInBatches(ctx context.Context, batchSize int, fn func(books []entity.Book) error) error
	// Delete removes the book with its comments and bookcase items and
	// clears every category pointing at it as top book.
	Delete(ctx context.Context, id uint) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	return r.db.WithContext(ctx).Omit("Category").Create(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*entity.Book, error) {
	var book entity.Book
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Book, error) {
	var books []entity.Book
	if len(ids) == 0 {
		return books, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", ids).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) FindAll(ctx context.Context, filter BookFilter) ([]entity.Book, int64, error) {
	var (
		books []entity.Book
		total int64
	)

	query := r.db.WithContext(ctx).Model(&entity.Book{})

	// Every whitespace separated term must match the name or the category title.
	for _, term := range strings.Fields(filter.Search) {
		like := "%" + likeEscaper.Replace(term) + "%"
		titles := r.db.Model(&entity.Category{}).Select("id").Where("title ILIKE ?", like)
		query = query.Where("books.name ILIKE ? OR books.category_id IN (?)", like, titles)
	}
	if filter.CategoryID != nil {
		query = query.Where("books.category_id = ?", *filter.CategoryID)
	}
	if filter.Score != nil {
		query = query.Where("books.score = ?", *filter.Score)
	}
	if filter.Author != "" {
		query = query.Where("books.author = ?", filter.Author)
	}
	if filter.Publications != "" {
		query = query.Where("books.publications = ?", filter.Publications)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = "books.id ASC"
	}

	if err := query.
		Preload("Category").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *bookRepository) FindByName(ctx context.Context, name string, limit int) ([]entity.Book, error) {
	var books []entity.Book
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		Limit(limit).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) FindInBatches(ctx context.Context, batchSize int, fn func(books []entity.Book) error) error {
	var batch []entity.Book
	return r.db.WithContext(ctx).
		Preload("Category").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Category{}).
			Where("top_book_id = ?", id).
			Update("top_book_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entity.BookCaseItem{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&entity.Book{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

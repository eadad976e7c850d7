package book

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/modules/book/dto"
	repo "anoa.com/bookcommunity/internal/modules/book/repository"
	categoryRepo "anoa.com/bookcommunity/internal/modules/category/repository"
	search "anoa.com/bookcommunity/internal/modules/search/service"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/database"
	commonDto "anoa.com/bookcommunity/pkg/dto"
	"anoa.com/bookcommunity/pkg/storage"
)

type Service interface {
	ListBooks(ctx context.Context, query dto.BookListQuery) (*commonDto.Paginated[dto.BookResponse], error)
	SearchBooks(ctx context.Context, query dto.BookSearchQuery) (*commonDto.Paginated[dto.BookResponse], error)
	GetBook(ctx context.Context, id uint) (*dto.BookResponse, error)
	CreateBook(ctx context.Context, actor policy.Actor, req dto.CreateBookRequest, cover *dto.CoverFile) (*dto.BookResponse, error)
	DeleteBook(ctx context.Context, actor policy.Actor, id uint) error
}

type service struct {
	bookRepo     repo.BookRepository
	categoryRepo categoryRepo.CategoryRepository
	coverStorage storage.ImageStorage
	meili        search.MeiliSearchService
}

// NewService wires the catalog. coverStorage and meili are optional.
func NewService(bookRepo repo.BookRepository, categoryRepo categoryRepo.CategoryRepository, coverStorage storage.ImageStorage, meili search.MeiliSearchService) Service {
	return &service{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		coverStorage: coverStorage,
		meili:        meili,
	}
}

func (s *service) ListBooks(ctx context.Context, query dto.BookListQuery) (*commonDto.Paginated[dto.BookResponse], error) {
	page := query.PageQuery.Normalize()

	books, total, err := s.bookRepo.FindAll(ctx, repo.BookFilter{
		Search:       query.Search,
		CategoryID:   query.Category,
		Score:        query.Score,
		Author:       query.Author,
		Publications: query.Publications,
		Ordering:     query.Ordering,
		Offset:       page.Offset(),
		Limit:        page.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return &commonDto.Paginated[dto.BookResponse]{
		Data: toResponses(books),
		Meta: commonDto.NewPaginationMeta(page, total),
	}, nil
}

// SearchBooks runs a full text query on the search index and falls back to
// the database listing when the index is unavailable.
func (s *service) SearchBooks(ctx context.Context, query dto.BookSearchQuery) (*commonDto.Paginated[dto.BookResponse], error) {
	page := query.PageQuery.Normalize()

	if s.meili != nil && query.Q != "" {
		ids, total, err := s.meili.SearchBookIDs(ctx, query.Q, page.Offset(), page.PageSize)
		if err == nil {
			books, err := s.bookRepo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("failed to load search hits: %w", err)
			}
			return &commonDto.Paginated[dto.BookResponse]{
				Data: toResponses(orderByIDs(books, ids)),
				Meta: commonDto.NewPaginationMeta(page, total),
			}, nil
		}
		slog.Warn("search index unavailable, falling back to database", slog.Any("error", err))
	}

	return s.ListBooks(ctx, dto.BookListQuery{PageQuery: page, Search: query.Q})
}

func (s *service) GetBook(ctx context.Context, id uint) (*dto.BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("book not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	res := dto.NewBookResponse(book)
	return &res, nil
}

func (s *service) CreateBook(ctx context.Context, actor policy.Actor, req dto.CreateBookRequest, cover *dto.CoverFile) (*dto.BookResponse, error) {
	if err := policy.Authorize(actor, policy.ActionCreate, policy.ResourceBook, nil); err != nil {
		return nil, err
	}

	dateWrited, err := time.Parse(entity.DateLayout, req.DateWrited)
	if err != nil {
		return nil, apperror.Validation("date_writed must be a date in YYYY-MM-DD format")
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	book := &entity.Book{
		Name:         req.Name,
		Cover:        req.Cover,
		Description:  req.Description,
		CategoryID:   category.ID,
		Score:        req.Score,
		Author:       req.Author,
		Publications: req.Publications,
		NumOfPages:   req.NumOfPages,
		DateWrited:   dateWrited,
	}

	if cover != nil {
		if s.coverStorage == nil {
			return nil, apperror.Validation("cover uploads are not enabled")
		}
		url, err := s.coverStorage.UploadImage(ctx, cover.Reader, storage.CoverFolder, cover.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to upload cover: %w", err)
		}
		book.Cover = url
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperror.Validation("category no longer exists")
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	book.Category = *category

	s.index(ctx, book)

	res := dto.NewBookResponse(book)
	return &res, nil
}

func (s *service) DeleteBook(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(actor, policy.ActionDelete, policy.ResourceBook, nil); err != nil {
		return err
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("book not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("book not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	// Covers given as external URLs are not ours to remove.
	if book.Cover != "" && s.coverStorage != nil && s.coverStorage.Owns(book.Cover) {
		if err := s.coverStorage.DeleteImage(ctx, book.Cover); err != nil {
			slog.Warn("failed to delete book cover", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
		}
	}

	if s.meili != nil {
		if err := s.meili.DeleteBook(ctx, id); err != nil {
			slog.Warn("failed to remove book from search index", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
		}
	}

	return nil
}

// resolveCategory maps a category title to exactly one category.
func (s *service) resolveCategory(ctx context.Context, title string) (*entity.Category, error) {
	categories, err := s.categoryRepo.FindByTitle(ctx, title, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	switch len(categories) {
	case 0:
		return nil, apperror.Validation(fmt.Sprintf("category: object with title=%s does not exist", title))
	case 1:
		return &categories[0], nil
	default:
		return nil, apperror.Validation(fmt.Sprintf("category: more than one category has title=%s", title))
	}
}

func (s *service) index(ctx context.Context, book *entity.Book) {
	if s.meili == nil {
		return
	}
	if err := s.meili.IndexBooks(ctx, []search.BookDocument{search.NewBookDocument(book)}); err != nil {
		slog.Warn("failed to index book", slog.Uint64("book_id", uint64(book.ID)), slog.Any("error", err))
	}
}

func toResponses(books []entity.Book) []dto.BookResponse {
	res := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		res = append(res, dto.NewBookResponse(&books[i]))
	}
	return res
}

// orderByIDs restores the ranking of the search hits.
func orderByIDs(books []entity.Book, ids []uint) []entity.Book {
	byID := make(map[uint]entity.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	ordered := make([]entity.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered
}

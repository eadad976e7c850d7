package bookcase

import (
	"context"
	"fmt"

	"anoa.com/bookcommunity/internal/entity"
	bookRepo "anoa.com/bookcommunity/internal/modules/book/repository"
	"anoa.com/bookcommunity/internal/modules/bookcase/dto"
	"anoa.com/bookcommunity/internal/modules/bookcase/repository"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/database"
	commonDto "anoa.com/bookcommunity/pkg/dto"
)

type Service interface {
	ListBookCases(ctx context.Context, actor policy.Actor) ([]dto.BookCaseResponse, error)
	GetBookCase(ctx context.Context, actor policy.Actor, id uint) (*dto.BookCaseResponse, error)
	DeleteBookCase(ctx context.Context, actor policy.Actor, id uint) error

	ListItems(ctx context.Context, scope Scope, page commonDto.PageQuery) (*commonDto.Paginated[dto.ItemResponse], error)
	GetItem(ctx context.Context, scope Scope, itemID uint) (*dto.ItemResponse, error)
	CreateItem(ctx context.Context, scope Scope, req dto.ItemRequest) (*dto.ItemResponse, error)
	UpdateItem(ctx context.Context, scope Scope, itemID uint, req dto.PatchItemRequest) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, scope Scope, itemID uint) error
}

type service struct {
	repo     repository.BookCaseRepository
	bookRepo bookRepo.BookRepository
}

func NewService(repo repository.BookCaseRepository, bookRepo bookRepo.BookRepository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) ListBookCases(ctx context.Context, actor policy.Actor) ([]dto.BookCaseResponse, error) {
	if !actor.Authenticated {
		return nil, apperror.ErrUnauthorized
	}

	var filter repository.BookCaseFilter
	if !actor.Admin {
		filter.UserID = &actor.UserID
	}

	bookCases, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookcases: %w", err)
	}

	data := make([]dto.BookCaseResponse, 0, len(bookCases))
	for i := range bookCases {
		data = append(data, dto.NewBookCaseResponse(&bookCases[i]))
	}

	return data, nil
}

func (s *service) GetBookCase(ctx context.Context, actor policy.Actor, id uint) (*dto.BookCaseResponse, error) {
	if !actor.Authenticated {
		return nil, apperror.ErrUnauthorized
	}

	bookCase, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("bookcase not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load bookcase: %w", err)
	}
	if err := policy.Authorize(actor, policy.ActionRead, policy.ResourceBookCase, &bookCase.UserID); err != nil {
		return nil, fmt.Errorf("bookcase not found: %w", err)
	}

	res := dto.NewBookCaseResponse(bookCase)
	return &res, nil
}

// DeleteBookCase always fails: a bookcase lives as long as its user.
func (s *service) DeleteBookCase(_ context.Context, actor policy.Actor, _ uint) error {
	return policy.Authorize(actor, policy.ActionDelete, policy.ResourceBookCase, nil)
}

func (s *service) ListItems(ctx context.Context, scope Scope, page commonDto.PageQuery) (*commonDto.Paginated[dto.ItemResponse], error) {
	bookCase, err := s.target(ctx, scope, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	page = page.Normalize()
	items, total, err := s.repo.ListItems(ctx, bookCase.ID, page.Offset(), page.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookcase items: %w", err)
	}

	data := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		data = append(data, dto.NewItemResponse(&items[i]))
	}

	return &commonDto.Paginated[dto.ItemResponse]{
		Data: data,
		Meta: commonDto.NewPaginationMeta(page, total),
	}, nil
}

func (s *service) GetItem(ctx context.Context, scope Scope, itemID uint) (*dto.ItemResponse, error) {
	bookCase, err := s.target(ctx, scope, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	item, err := s.findItem(ctx, bookCase.ID, itemID)
	if err != nil {
		return nil, err
	}

	res := dto.NewItemResponse(item)
	return &res, nil
}

func (s *service) CreateItem(ctx context.Context, scope Scope, req dto.ItemRequest) (*dto.ItemResponse, error) {
	bookCase, err := s.target(ctx, scope, policy.ActionCreate)
	if err != nil {
		return nil, err
	}

	book, err := s.findBook(ctx, req.Book)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotShelved(ctx, bookCase.ID, book.ID, 0); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.ItemWantRead
	}
	item := &entity.BookCaseItem{
		BookCaseID: bookCase.ID,
		BookID:     book.ID,
		Status:     status,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, s.mapWriteError(err)
	}
	item.Book = *book

	res := dto.NewItemResponse(item)
	return &res, nil
}

func (s *service) UpdateItem(ctx context.Context, scope Scope, itemID uint, req dto.PatchItemRequest) (*dto.ItemResponse, error) {
	bookCase, err := s.target(ctx, scope, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	item, err := s.findItem(ctx, bookCase.ID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Book != nil && *req.Book != item.BookID {
		book, err := s.findBook(ctx, *req.Book)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNotShelved(ctx, bookCase.ID, book.ID, item.ID); err != nil {
			return nil, err
		}
		item.BookID = book.ID
		item.Book = *book
	}
	if req.Status != nil {
		item.Status = *req.Status
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, s.mapWriteError(err)
	}

	res := dto.NewItemResponse(item)
	return &res, nil
}

func (s *service) DeleteItem(ctx context.Context, scope Scope, itemID uint) error {
	bookCase, err := s.target(ctx, scope, policy.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, bookCase.ID, itemID); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("bookcase item not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete bookcase item: %w", err)
	}
	return nil
}

// target resolves and authorizes the bookcase an item operation acts on.
func (s *service) target(ctx context.Context, scope Scope, action policy.Action) (*entity.BookCase, error) {
	if scope.BookCaseID != nil {
		if err := policy.Authorize(scope.Actor, action, policy.ResourceAdminBookCaseItem, nil); err != nil {
			return nil, err
		}
		bookCase, err := s.repo.FindByID(ctx, *scope.BookCaseID)
		if err != nil {
			if database.IsNotFound(err) {
				return nil, fmt.Errorf("bookcase not found: %w", apperror.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load bookcase: %w", err)
		}
		return bookCase, nil
	}

	if !scope.Actor.Authenticated {
		return nil, apperror.ErrUnauthorized
	}
	bookCase, err := s.ownBookCase(ctx, scope.Actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bookcase: %w", err)
	}
	if err := policy.Authorize(scope.Actor, action, policy.ResourceBookCaseItem, &bookCase.UserID); err != nil {
		return nil, err
	}
	return bookCase, nil
}

func (s *service) findItem(ctx context.Context, bookCaseID, itemID uint) (*entity.BookCaseItem, error) {
	item, err := s.repo.FindItem(ctx, bookCaseID, itemID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("bookcase item not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load bookcase item: %w", err)
	}
	return item, nil
}

func (s *service) findBook(ctx context.Context, bookID uint) (*entity.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.Validation(fmt.Sprintf("book: Invalid pk \"%d\" - object does not exist.", bookID))
		}
		return nil, fmt.Errorf("failed to load book: %w", err)
	}
	return book, nil
}

func (s *service) ensureNotShelved(ctx context.Context, bookCaseID, bookID, excludeItemID uint) error {
	exists, err := s.repo.ItemExists(ctx, bookCaseID, bookID, excludeItemID)
	if err != nil {
		return fmt.Errorf("failed to check bookcase items: %w", err)
	}
	if exists {
		return apperror.Validation(dto.DuplicateItemMessage)
	}
	return nil
}

// mapWriteError turns constraint violations from racing writes into the
// errors the pre-checks would have produced.
func (s *service) mapWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return apperror.Validation(dto.DuplicateItemMessage)
	case database.IsForeignKeyViolation(err):
		return apperror.Validation("book: object does not exist.")
	}
	return fmt.Errorf("failed to save bookcase item: %w", err)
}

package category

import (
	"context"
	"fmt"
	"net/http"

	"anoa.com/bookcommunity/internal/entity"
	bookRepo "anoa.com/bookcommunity/internal/modules/book/repository"
	"anoa.com/bookcommunity/internal/modules/category/dto"
	"anoa.com/bookcommunity/internal/modules/category/repository"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/database"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, actor policy.Actor, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, actor policy.Actor, id uint, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	PatchCategory(ctx context.Context, actor policy.Actor, id uint, req dto.PatchCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor policy.Actor, id uint) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	bookRepo bookRepo.BookRepository
}

func NewCategoryService(repo repository.CategoryRepository, bookRepo bookRepo.BookRepository) CategoryService {
	return &categoryService{repo: repo, bookRepo: bookRepo}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	data := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		data = append(data, dto.NewCategoryResponse(&categories[i]))
	}

	return data, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, actor policy.Actor, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := policy.Authorize(actor, policy.ActionCreate, policy.ResourceCategory, nil); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.setTopBook(ctx, category, req.TopBook); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	res := dto.NewCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actor policy.Actor, id uint, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceCategory, nil); err != nil {
		return nil, err
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Title = req.Title
	category.Description = req.Description
	if err := s.setTopBook(ctx, category, req.TopBook); err != nil {
		return nil, err
	}

	return s.save(ctx, category)
}

func (s *categoryService) PatchCategory(ctx context.Context, actor policy.Actor, id uint, req dto.PatchCategoryRequest) (*dto.CategoryResponse, error) {
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceCategory, nil); err != nil {
		return nil, err
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		category.Title = *req.Title
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.TopBook.Set {
		if err := s.setTopBook(ctx, category, req.TopBook.Value); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, category)
}

func (s *categoryService) DeleteCategory(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Authorize(actor, policy.ActionDelete, policy.ResourceCategory, nil); err != nil {
		return err
	}

	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category books: %w", err)
	}
	if count > 0 {
		return apperror.New(http.StatusConflict, fmt.Sprintf("cannot delete category: %d book(s) still reference it", count), apperror.ErrIntegrityBlocked)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case database.IsForeignKeyViolation(err):
			return fmt.Errorf("cannot delete category: %w", apperror.ErrIntegrityBlocked)
		case database.IsNotFound(err):
			return fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *categoryService) find(ctx context.Context, id uint) (*entity.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) save(ctx context.Context, category *entity.Category) (*dto.CategoryResponse, error) {
	if err := s.repo.Update(ctx, category); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperror.Validation("top_book no longer exists")
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	res := dto.NewCategoryResponse(category)
	return &res, nil
}

// setTopBook resolves a book name to exactly one book; nil clears the link.
func (s *categoryService) setTopBook(ctx context.Context, category *entity.Category, name *string) error {
	if name == nil {
		category.TopBookID = nil
		category.TopBook = nil
		return nil
	}

	books, err := s.bookRepo.FindByName(ctx, *name, 2)
	if err != nil {
		return fmt.Errorf("failed to resolve top_book: %w", err)
	}

	switch len(books) {
	case 0:
		return apperror.Validation(fmt.Sprintf("top_book: object with name=%s does not exist", *name))
	case 1:
		category.TopBookID = &books[0].ID
		category.TopBook = &books[0]
		return nil
	default:
		return apperror.Validation(fmt.Sprintf("top_book: more than one book has name=%s", *name))
	}
}

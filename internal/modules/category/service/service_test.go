package category

import (
	"context"
	"errors"
	"testing"

	"anoa.com/bookcommunity/internal/entity"
	bookMock "anoa.com/bookcommunity/internal/modules/book/repository/mock"
	"anoa.com/bookcommunity/internal/modules/category/dto"
	categoryMock "anoa.com/bookcommunity/internal/modules/category/repository/mock"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var (
	admin  = policy.Actor{UserID: uuid.New(), Authenticated: true, Admin: true}
	member = policy.Actor{UserID: uuid.New(), Authenticated: true}
)

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (CategoryService, *categoryMock.MockCategoryRepository, *bookMock.MockBookRepository) {
	ctrl := gomock.NewController(t)
	repo := categoryMock.NewMockCategoryRepository(ctrl)
	books := bookMock.NewMockBookRepository(ctrl)
	return NewCategoryService(repo, books), repo, books
}

func TestCreateCategoryResolvesTopBook(t *testing.T) {
	tests := []struct {
		name    string
		matches []entity.Book
		wantErr error
	}{
		{"unique name", []entity.Book{{ID: 4, Name: "Dune"}}, nil},
		{"unknown name", nil, apperror.ErrValidation},
		{"ambiguous name", []entity.Book{{ID: 4, Name: "Dune"}, {ID: 8, Name: "Dune"}}, apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, books := newService(t)
			books.EXPECT().FindByName(gomock.Any(), "Dune", 2).Return(tt.matches, nil)
			if tt.wantErr == nil {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *entity.Category) error {
					if c.TopBookID == nil || *c.TopBookID != 4 {
						t.Errorf("top book id = %v, want 4", c.TopBookID)
					}
					c.ID = 1
					return nil
				})
			}

			res, err := svc.CreateCategory(context.Background(), admin, dto.CategoryRequest{
				Title:       "Science fiction",
				Description: "Spaceships",
				TopBook:     strPtr("Dune"),
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCategory() error = %v", err)
			}
			if res.TopBook == nil || *res.TopBook != "Dune" {
				t.Errorf("top_book = %v, want Dune", res.TopBook)
			}
		})
	}
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.CreateCategory(context.Background(), member, dto.CategoryRequest{Title: "x", Description: "y"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	_, err = svc.CreateCategory(context.Background(), policy.Anonymous, dto.CategoryRequest{Title: "x", Description: "y"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestPatchCategory(t *testing.T) {
	t.Run("explicit null clears top book", func(t *testing.T) {
		svc, repo, _ := newService(t)
		topID := uint(4)
		repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(&entity.Category{
			ID: 1, Title: "Sci-fi", TopBookID: &topID, TopBook: &entity.Book{ID: 4, Name: "Dune"},
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *entity.Category) error {
			if c.TopBookID != nil {
				t.Errorf("top book should be cleared, got %v", *c.TopBookID)
			}
			return nil
		})

		res, err := svc.PatchCategory(context.Background(), admin, 1, dto.PatchCategoryRequest{TopBook: dto.NullableString{Set: true}})
		if err != nil {
			t.Fatalf("PatchCategory() error = %v", err)
		}
		if res.TopBook != nil || res.Title != "Sci-fi" {
			t.Errorf("unexpected response %+v", res)
		}
	})

	t.Run("absent top book is untouched", func(t *testing.T) {
		svc, repo, _ := newService(t)
		topID := uint(4)
		repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(&entity.Category{
			ID: 1, Title: "Sci-fi", TopBookID: &topID, TopBook: &entity.Book{ID: 4, Name: "Dune"},
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.PatchCategory(context.Background(), admin, 1, dto.PatchCategoryRequest{Title: strPtr("Science fiction")})
		if err != nil {
			t.Fatalf("PatchCategory() error = %v", err)
		}
		if res.TopBook == nil || *res.TopBook != "Dune" || res.Title != "Science fiction" {
			t.Errorf("unexpected response %+v", res)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("blocked while books reference it", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().FindByID(gomock.Any(), uint(2)).Return(&entity.Category{ID: 2}, nil)
		repo.EXPECT().CountBooks(gomock.Any(), uint(2)).Return(int64(3), nil)

		err := svc.DeleteCategory(context.Background(), admin, 2)
		if !errors.Is(err, apperror.ErrIntegrityBlocked) {
			t.Fatalf("expected integrity blocked, got %v", err)
		}
		if apperror.MapErrorToStatus(err) != 409 {
			t.Errorf("status = %d, want 409", apperror.MapErrorToStatus(err))
		}
	})

	t.Run("racing insert hits the foreign key", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().FindByID(gomock.Any(), uint(2)).Return(&entity.Category{ID: 2}, nil)
		repo.EXPECT().CountBooks(gomock.Any(), uint(2)).Return(int64(0), nil)
		repo.EXPECT().Delete(gomock.Any(), uint(2)).Return(gorm.ErrForeignKeyViolated)

		if err := svc.DeleteCategory(context.Background(), admin, 2); !errors.Is(err, apperror.ErrIntegrityBlocked) {
			t.Fatalf("expected integrity blocked, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().FindByID(gomock.Any(), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		if err := svc.DeleteCategory(context.Background(), admin, 2); !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("empty category is removed", func(t *testing.T) {
		svc, repo, _ := newService(t)
		repo.EXPECT().FindByID(gomock.Any(), uint(2)).Return(&entity.Category{ID: 2}, nil)
		repo.EXPECT().CountBooks(gomock.Any(), uint(2)).Return(int64(0), nil)
		repo.EXPECT().Delete(gomock.Any(), uint(2)).Return(nil)

		if err := svc.DeleteCategory(context.Background(), admin, 2); err != nil {
			t.Fatalf("DeleteCategory() error = %v", err)
		}
	})
}

func TestGetAllCategoriesReturnsEveryCategory(t *testing.T) {
	svc, repo, _ := newService(t)
	dune := &entity.Book{ID: 4, Name: "Dune"}
	repo.EXPECT().FindAll(gomock.Any()).Return([]entity.Category{
		{ID: 1, Title: "Science fiction", TopBook: dune},
		{ID: 2, Title: "Poetry"},
	}, nil)

	res, err := svc.GetAllCategories(context.Background())
	if err != nil {
		t.Fatalf("GetAllCategories() error = %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("got %d categories, want 2", len(res))
	}
	if res[0].TopBook == nil || *res[0].TopBook != "Dune" || res[1].TopBook != nil {
		t.Errorf("unexpected top books %+v", res)
	}
}

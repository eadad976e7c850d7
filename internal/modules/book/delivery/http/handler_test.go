package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/middleware"
	bookMock "anoa.com/bookcommunity/internal/modules/book/repository/mock"
	book "anoa.com/bookcommunity/internal/modules/book/service"
	categoryMock "anoa.com/bookcommunity/internal/modules/category/repository/mock"
	"anoa.com/bookcommunity/internal/policy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type memoryStorage struct{ files map[string][]byte }

func (m *memoryStorage) UploadImage(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.files[folder+"/"+fileName] = data
	return "https://cdn.example.com/" + folder + "/" + fileName, nil
}

func (m *memoryStorage) DeleteImage(context.Context, string) error { return nil }

func (m *memoryStorage) Owns(string) bool { return true }

type fixture struct {
	books      *bookMock.MockBookRepository
	categories *categoryMock.MockCategoryRepository
	storage    *memoryStorage
	router     *gin.Engine
}

func newFixture(t *testing.T, actor policy.Actor) *fixture {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	f := &fixture{
		books:      bookMock.NewMockBookRepository(ctrl),
		categories: categoryMock.NewMockCategoryRepository(ctrl),
		storage:    &memoryStorage{files: map[string][]byte{}},
	}
	h := NewBookHandler(book.NewService(f.books, f.categories, f.storage, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) { middleware.SetActor(c, actor) })
	r.GET("/books", h.ListBooks)
	r.GET("/books/:book_id", h.GetBook)
	r.POST("/books", h.CreateBook)
	r.DELETE("/books/:book_id", h.DeleteBook)
	f.router = r
	return f
}

var adminActor = policy.Actor{UserID: uuid.New(), Username: "root", Authenticated: true, Admin: true}

func TestCreateBookMultipartWithCover(t *testing.T) {
	f := newFixture(t, adminActor)

	f.categories.EXPECT().FindByTitle(gomock.Any(), "Classics", 2).Return([]entity.Category{{ID: 1, Title: "Classics"}}, nil)
	f.books.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *entity.Book) error {
		b.ID = 5
		return nil
	})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fields := map[string]string{
		"name":         "Emma",
		"description":  "A novel about youthful hubris.",
		"category":     "Classics",
		"score":        "4",
		"author":       "Jane Austen",
		"publications": "John Murray",
		"num_of_pages": "474",
		"date_writed":  "1815-12-23",
	}
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	part, _ := w.CreateFormFile("cover", "emma.png")
	_, _ = part.Write([]byte("fake-png"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/books", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var res map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res["cover"] != "https://cdn.example.com/book/book_cover/emma.png" || res["category"] != "Classics" {
		t.Errorf("unexpected body %v", res)
	}
	if string(f.storage.files["book/book_cover/emma.png"]) != "fake-png" {
		t.Error("cover was not uploaded")
	}
}

func TestCreateBookValidation(t *testing.T) {
	f := newFixture(t, adminActor)

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"name":"Emma","score":9,"date_writed":"23/12/1815"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "score must be at most 5") {
		t.Errorf("unexpected error body %s", rec.Body.String())
	}
}

func TestBookWritesAreForbiddenForMembers(t *testing.T) {
	f := newFixture(t, policy.Actor{UserID: uuid.New(), Authenticated: true})

	req := httptest.NewRequest(http.MethodDelete, "/books/3", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestGetBook(t *testing.T) {
	f := newFixture(t, policy.Anonymous)

	f.books.EXPECT().FindByID(gomock.Any(), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	for path, want := range map[string]int{"/books/99": http.StatusNotFound, "/books/abc": http.StatusNotFound} {
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, want)
		}
	}
}

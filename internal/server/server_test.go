package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/bookcommunity/internal/config"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AppEnv:                "test",
		AllowedOrigins:        "http://localhost:3000",
		JWTSecret:             "secret",
		JWTTTL:                time.Hour,
		SearchReindexSchedule: "0 3 * * *",
	}

	s, err := NewServer(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func TestRoutesRequiringAuthentication(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPost, "/api/books", http.StatusUnauthorized},
		{http.MethodDelete, "/api/books/1", http.StatusUnauthorized},
		{http.MethodPost, "/api/books/1/comments", http.StatusUnauthorized},
		{http.MethodPatch, "/api/categories/1", http.StatusUnauthorized},
		{http.MethodGet, "/api/bookcase", http.StatusUnauthorized},
		{http.MethodGet, "/api/bookcase/items", http.StatusUnauthorized},
		{http.MethodDelete, "/api/bookcase/1", http.StatusUnauthorized},
		{http.MethodGet, "/api/auth/me", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/comments/stream", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/users", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/stats", http.StatusUnauthorized},
		{http.MethodPost, "/api/admin/jobs/search-reindex/run", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestBadTokenIsRejected(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("splitOrigins() = %v", got)
	}
	if got := splitOrigins(""); len(got) != 1 || got[0] != "http://localhost:3000" {
		t.Errorf("splitOrigins(\"\") = %v", got)
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	notifService "anoa.com/bookcommunity/internal/modules/notification/service"
	"github.com/gin-gonic/gin"
)

func TestStreamWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(notifService.NewNotificationService(nil), nil)

	r := gin.New()
	r.GET("/admin/comments/stream", h.StreamWaitingComments)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/comments/stream", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

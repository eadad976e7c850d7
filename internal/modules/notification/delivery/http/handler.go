package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	notifService "anoa.com/bookcommunity/internal/modules/notification/service"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const pingInterval = 30 * time.Second

type NotificationHandler struct {
	service  notifService.NotificationService
	upgrader websocket.Upgrader
}

func NewNotificationHandler(service notifService.NotificationService, allowedOrigins map[string]bool) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigins[origin]
			},
		},
	}
}

// StreamWaitingComments relays the moderation channel to an admin socket.
// Access control is applied by the route's middleware.
func (h *NotificationHandler) StreamWaitingComments(c *gin.Context) {
	ctx := c.Request.Context()

	pubsub, err := h.service.SubscribeWaitingComments(ctx)
	if err != nil {
		if errors.Is(err, notifService.ErrFeedUnavailable) {
			response.ResponseError(c, apperror.New(http.StatusServiceUnavailable, err.Error(), err))
			return
		}
		response.ResponseError(c, err)
		return
	}
	defer pubsub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("failed to upgrade websocket", slog.Any("error", err))
		return
	}
	defer conn.Close()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				slog.Warn("failed to write to websocket", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-ctx.Done():
			return
		}
	}
}

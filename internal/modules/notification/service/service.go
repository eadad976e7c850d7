package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WaitingCommentsChannel carries every newly created comment awaiting moderation.
const WaitingCommentsChannel = "comments:waiting"

var ErrFeedUnavailable = errors.New("moderation feed requires redis")

type CommentEvent struct {
	ID              uint      `json:"id"`
	BookID          uint      `json:"book_id"`
	User            string    `json:"user"`
	Status          string    `json:"status"`
	Body            string    `json:"body"`
	DatetimeCreated time.Time `json:"datetime_created"`
}

type NotificationService interface {
	PublishWaitingComment(ctx context.Context, event CommentEvent) error
	SubscribeWaitingComments(ctx context.Context) (*redis.PubSub, error)
}

type notificationService struct {
	redisClient *redis.Client
}

func NewNotificationService(redisClient *redis.Client) NotificationService {
	return &notificationService{redisClient: redisClient}
}

// PublishWaitingComment is a no-op without Redis.
func (s *notificationService) PublishWaitingComment(ctx context.Context, event CommentEvent) error {
	if s.redisClient == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode comment event: %w", err)
	}
	if err := s.redisClient.Publish(ctx, WaitingCommentsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish comment event: %w", err)
	}
	return nil
}

// SubscribeWaitingComments returns a confirmed subscription; the caller closes it.
func (s *notificationService) SubscribeWaitingComments(ctx context.Context) (*redis.PubSub, error) {
	if s.redisClient == nil {
		return nil, ErrFeedUnavailable
	}

	pubsub := s.redisClient.Subscribe(ctx, WaitingCommentsChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", WaitingCommentsChannel, err)
	}
	return pubsub, nil
}

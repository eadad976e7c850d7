package comment

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"anoa.com/bookcommunity/internal/entity"
	bookRepo "anoa.com/bookcommunity/internal/modules/book/repository"
	"anoa.com/bookcommunity/internal/modules/comment/dto"
	"anoa.com/bookcommunity/internal/modules/comment/repository"
	notifService "anoa.com/bookcommunity/internal/modules/notification/service"
	"anoa.com/bookcommunity/internal/policy"
	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/database"
	commonDto "anoa.com/bookcommunity/pkg/dto"
	"anoa.com/bookcommunity/pkg/ratelimiter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

type CommentService interface {
	ListComments(ctx context.Context, bookID uint, query dto.CommentListQuery) (*commonDto.Paginated[dto.CommentResponse], error)
	GetComment(ctx context.Context, bookID, commentID uint) (*dto.CommentResponse, error)
	CreateComment(ctx context.Context, actor policy.Actor, bookID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, actor policy.Actor, bookID, commentID uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor policy.Actor, bookID, commentID uint) error
}

type commentService struct {
	repo         repository.CommentRepository
	bookRepo     bookRepo.BookRepository
	notification notifService.NotificationService
	redisClient  *redis.Client
	cooldown     time.Duration
	sanitizer    *bluemonday.Policy
}

func NewCommentService(repo repository.CommentRepository, bookRepo bookRepo.BookRepository, notification notifService.NotificationService, redisClient *redis.Client, cooldown time.Duration) CommentService {
	return &commentService{
		repo:         repo,
		bookRepo:     bookRepo,
		notification: notification,
		redisClient:  redisClient,
		cooldown:     cooldown,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *commentService) ListComments(ctx context.Context, bookID uint, query dto.CommentListQuery) (*commonDto.Paginated[dto.CommentResponse], error) {
	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}

	page := query.PageQuery.Normalize()
	comments, total, err := s.repo.FindByBook(ctx, repository.CommentFilter{
		BookID:   bookID,
		Ordering: query.Ordering,
		Offset:   page.Offset(),
		Limit:    page.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	data := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, dto.NewCommentResponse(&comments[i]))
	}

	return &commonDto.Paginated[dto.CommentResponse]{
		Data: data,
		Meta: commonDto.NewPaginationMeta(page, total),
	}, nil
}

func (s *commentService) GetComment(ctx context.Context, bookID, commentID uint) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, bookID, commentID)
	if err != nil {
		return nil, err
	}
	res := dto.NewCommentResponse(comment)
	return &res, nil
}

func (s *commentService) CreateComment(ctx context.Context, actor policy.Actor, bookID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := policy.Authorize(actor, policy.ActionCreate, policy.ResourceComment, nil); err != nil {
		return nil, err
	}
	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}

	body, err := s.cleanBody(req.Body)
	if err != nil {
		return nil, err
	}

	release, err := ratelimiter.Cooldown(ctx, s.redisClient, actor.UserID, ratelimiter.ScopeComment, s.cooldown)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		UserID: actor.UserID,
		BookID: bookID,
		Status: entity.CommentWaiting,
		Body:   body,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		release()
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("book not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.User.Username = actor.Username

	if s.notification != nil {
		event := notifService.CommentEvent{
			ID:              comment.ID,
			BookID:          comment.BookID,
			User:            actor.Username,
			Status:          comment.Status,
			Body:            comment.Body,
			DatetimeCreated: comment.DatetimeCreated,
		}
		if err := s.notification.PublishWaitingComment(ctx, event); err != nil {
			slog.Warn("failed to publish waiting comment", slog.Uint64("comment_id", uint64(comment.ID)), slog.Any("error", err))
		}
	}

	res := dto.NewCommentResponse(comment)
	return &res, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor policy.Actor, bookID, commentID uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, bookID, commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceComment, &comment.UserID); err != nil {
		return nil, err
	}

	if req.Body != nil {
		body, err := s.cleanBody(*req.Body)
		if err != nil {
			return nil, err
		}
		comment.Body = body
		if err := s.repo.UpdateBody(ctx, comment); err != nil {
			return nil, fmt.Errorf("failed to update comment: %w", err)
		}
	}

	res := dto.NewCommentResponse(comment)
	return &res, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor policy.Actor, bookID, commentID uint) error {
	comment, err := s.find(ctx, bookID, commentID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDelete, policy.ResourceComment, &comment.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, comment.ID); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *commentService) ensureBook(ctx context.Context, bookID uint) error {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("book not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load book: %w", err)
	}
	return nil
}

func (s *commentService) find(ctx context.Context, bookID, commentID uint) (*entity.Comment, error) {
	comment, err := s.repo.FindByID(ctx, bookID, commentID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return comment, nil
}

// cleanBody strips markup and rejects bodies that end up empty.
func (s *commentService) cleanBody(body string) (string, error) {
	cleaned := strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(body)))
	if cleaned == "" {
		return "", apperror.Validation("body: This field may not be blank.")
	}
	return cleaned, nil
}

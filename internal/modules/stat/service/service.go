package service

import (
	"context"
	"fmt"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/modules/stat/dto"
	"anoa.com/bookcommunity/internal/modules/stat/repository"
	"anoa.com/bookcommunity/internal/policy"
)

type StatService interface {
	GetCatalogStats(ctx context.Context, actor policy.Actor) (*dto.CatalogStats, error)
}

type statService struct {
	repo repository.StatRepository
}

func NewStatService(repo repository.StatRepository) StatService {
	return &statService{
		repo: repo,
	}
}

func (s *statService) GetCatalogStats(ctx context.Context, actor policy.Actor) (*dto.CatalogStats, error) {
	if err := policy.Authorize(actor, policy.ActionRead, policy.ResourceStats, nil); err != nil {
		return nil, err
	}

	var (
		stats dto.CatalogStats
		err   error
	)
	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalBooks, err = s.repo.CountBooks(ctx); err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	if stats.TotalCategories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if stats.WaitingComments, err = s.repo.CountCommentsByStatus(ctx, entity.CommentWaiting); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	if stats.ShelvedBooks, err = s.repo.CountBookCaseItems(ctx); err != nil {
		return nil, fmt.Errorf("failed to count bookcase items: %w", err)
	}
	return &stats, nil
}

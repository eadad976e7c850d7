package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"anoa.com/bookcommunity/internal/entity"
	bookRepo "anoa.com/bookcommunity/internal/modules/book/repository"
	search "anoa.com/bookcommunity/internal/modules/search/service"
)

const reindexBatchSize = 200

// SearchReindexJob pushes every book to the search index, repairing entries
// lost by best-effort indexing on writes.
type SearchReindexJob struct {
	books    bookRepo.BookRepository
	meili    search.MeiliSearchService
	schedule string
}

func NewSearchReindexJob(books bookRepo.BookRepository, meili search.MeiliSearchService, schedule string) *SearchReindexJob {
	return &SearchReindexJob{books: books, meili: meili, schedule: schedule}
}

func (j *SearchReindexJob) Name() string { return "search-reindex" }

func (j *SearchReindexJob) Schedule() string { return j.schedule }

func (j *SearchReindexJob) Execute(ctx context.Context) error {
	total := 0
	err := j.books.FindInBatches(ctx, reindexBatchSize, func(books []entity.Book) error {
		docs := make([]search.BookDocument, 0, len(books))
		for i := range books {
			docs = append(docs, search.NewBookDocument(&books[i]))
		}
		if err := j.meili.IndexBooks(ctx, docs); err != nil {
			return err
		}
		total += len(docs)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reindex books: %w", err)
	}

	slog.Info("books reindexed", slog.Int("count", total))
	return nil
}

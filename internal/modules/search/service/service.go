package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"anoa.com/bookcommunity/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const booksIndex = "books"

// BookDocument is the searchable projection of a book.
type BookDocument struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Publications string `json:"publications"`
	Category     string `json:"category"`
	CategoryID   uint   `json:"category_id"`
	Score        int    `json:"score"`
}

func NewBookDocument(book *entity.Book) BookDocument {
	return BookDocument{
		ID:           book.ID,
		Name:         book.Name,
		Description:  book.Description,
		Author:       book.Author,
		Publications: book.Publications,
		Category:     book.Category.Title,
		CategoryID:   book.CategoryID,
		Score:        book.Score,
	}
}

type MeiliSearchService interface {
	IndexBooks(ctx context.Context, docs []BookDocument) error
	DeleteBook(ctx context.Context, id uint) error
	SearchBookIDs(ctx context.Context, query string, offset, limit int) ([]uint, int64, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"category_id", "score"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(booksIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		slog.Warn("failed to update books filterable attributes", slog.Any("error", err))
	}

	sortableAttrs := []string{"name", "score"}
	if _, err := s.client.Index(booksIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		slog.Warn("failed to update books sortable attributes", slog.Any("error", err))
	}

	searchable := []string{"name", "category", "author", "publications", "description"}
	if _, err := s.client.Index(booksIndex).UpdateSearchableAttributes(&searchable); err != nil {
		slog.Warn("failed to update books searchable attributes", slog.Any("error", err))
	}
}

func (s *meiliSearchService) IndexBooks(ctx context.Context, docs []BookDocument) error {
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		docs[i].Description = cleanText(s.sanitizer, docs[i].Description)
	}

	task, err := s.client.Index(booksIndex).AddDocumentsWithContext(ctx, docs, nil)
	if err != nil {
		return fmt.Errorf("failed to index books: %w", err)
	}
	slog.Debug("books queued for indexing", slog.Int("count", len(docs)), slog.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *meiliSearchService) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.client.Index(booksIndex).DeleteDocumentWithContext(ctx, strconv.FormatUint(uint64(id), 10)); err != nil {
		return fmt.Errorf("failed to delete book %d from index: %w", id, err)
	}
	return nil
}

type searchHits struct {
	Hits []struct {
		ID uint `json:"id"`
	} `json:"hits"`
	EstimatedTotalHits int64 `json:"estimatedTotalHits"`
}

func (s *meiliSearchService) SearchBookIDs(ctx context.Context, query string, offset, limit int) ([]uint, int64, error) {
	raw, err := s.client.Index(booksIndex).SearchRawWithContext(ctx, query, &meilisearch.SearchRequest{
		Offset:               int64(offset),
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("meilisearch query failed: %w", err)
	}

	ids, total, err := decodeHits(*raw)
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func decodeHits(raw []byte) ([]uint, int64, error) {
	var res searchHits
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uint, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, res.EstimatedTotalHits, nil
}

func cleanText(p *bluemonday.Policy, content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleaned := html.UnescapeString(p.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

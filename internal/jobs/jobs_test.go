package jobs

import (
	"context"
	"errors"
	"testing"

	"anoa.com/bookcommunity/internal/entity"
	bookMock "anoa.com/bookcommunity/internal/modules/book/repository/mock"
	search "anoa.com/bookcommunity/internal/modules/search/service"
	searchMock "anoa.com/bookcommunity/internal/modules/search/service/mock"
	"anoa.com/bookcommunity/pkg/apperror"
	"go.uber.org/mock/gomock"
)

type countingJob struct {
	schedule string
	runs     int
}

func (j *countingJob) Name() string                  { return "counting" }
func (j *countingJob) Schedule() string              { return j.schedule }
func (j *countingJob) Execute(context.Context) error { j.runs++; return nil }

func TestSchedulerRegister(t *testing.T) {
	s := NewScheduler(0)

	if err := s.Register(&countingJob{schedule: "not a cron spec"}); err == nil {
		t.Fatal("expected invalid schedule to fail")
	}

	job := &countingJob{}
	if err := s.Register(job); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if names := s.Names(); len(names) != 1 || names[0] != "counting" {
		t.Fatalf("Names() = %v", names)
	}

	if err := s.RunByName(context.Background(), "counting"); err != nil {
		t.Fatalf("RunByName() error = %v", err)
	}
	if job.runs != 1 {
		t.Errorf("runs = %d, want 1", job.runs)
	}
	if err := s.RunByName(context.Background(), "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found for unknown job, got %v", err)
	}
}

func TestSearchReindexJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	books := bookMock.NewMockBookRepository(ctrl)
	meili := searchMock.NewMockMeiliSearchService(ctrl)

	books.EXPECT().FindInBatches(gomock.Any(), reindexBatchSize, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int, fn func([]entity.Book) error) error {
			if err := fn([]entity.Book{{ID: 1, Name: "Dune"}, {ID: 2, Name: "Emma"}}); err != nil {
				return err
			}
			return fn([]entity.Book{{ID: 3, Name: "Ulysses"}})
		})
	var indexed []uint
	meili.EXPECT().IndexBooks(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, docs []search.BookDocument) error {
		for _, d := range docs {
			indexed = append(indexed, d.ID)
		}
		return nil
	}).Times(2)

	job := NewSearchReindexJob(books, meili, "0 3 * * *")
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(indexed) != 3 {
		t.Errorf("indexed = %v, want 3 books", indexed)
	}
}

func TestSearchReindexJobStopsOnIndexError(t *testing.T) {
	ctrl := gomock.NewController(t)
	books := bookMock.NewMockBookRepository(ctrl)
	meili := searchMock.NewMockMeiliSearchService(ctrl)
	boom := errors.New("meili down")

	books.EXPECT().FindInBatches(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int, fn func([]entity.Book) error) error {
			return fn([]entity.Book{{ID: 1}})
		})
	meili.EXPECT().IndexBooks(gomock.Any(), gomock.Any()).Return(boom)

	if err := NewSearchReindexJob(books, meili, "").Execute(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped index error, got %v", err)
	}
}

package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/robfig/cron/v3"
)

// Scheduler runs registered jobs on their cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	timeout time.Duration
}

func NewScheduler(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		jobs:    make([]Job, 0),
		timeout: timeout,
	}
}

// Register adds job and schedules it when it has a cron spec.
func (s *Scheduler) Register(job Job) error {
	schedule := job.Schedule()
	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, func() { s.run(job) }); err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
		}
		slog.Info("job scheduled", slog.String("job", job.Name()), slog.String("schedule", schedule))
	} else {
		slog.Info("job registered on demand", slog.String("job", job.Name()))
	}

	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Execute(ctx); err != nil {
		slog.Error("job failed", slog.String("job", job.Name()), slog.Any("error", err))
		return
	}
	slog.Info("job completed", slog.String("job", job.Name()), slog.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", slog.Int("jobs", len(s.jobs)))
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	slog.Info("scheduler stopped")
}

// RunByName executes a registered job immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			return job.Execute(ctx)
		}
	}
	return fmt.Errorf("job %q: %w", name, apperror.ErrNotFound)
}

func (s *Scheduler) Names() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}

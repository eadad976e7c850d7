package jobs

import "context"

// Job is a unit of background work run by the Scheduler.
type Job interface {
	// Name identifies the job in logs and on-demand runs.
	Name() string
	// Schedule is a standard five field cron spec. Empty means on-demand only.
	Schedule() string
	Execute(ctx context.Context) error
}

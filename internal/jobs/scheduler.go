package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sangkips/billbook-api/pkg/logger"
)

const jobTimeout = time.Minute

// Maintenance is the set of periodic tasks the scheduler runs.
type Maintenance interface {
	ReportStalePaidBills(ctx context.Context) (int, error)
	PurgeIdempotencyKeys(ctx context.Context) (int64, error)
}

// Scheduler runs maintenance on a cron schedule with a seconds field,
// e.g. "0 */15 * * * *" for every fifteen minutes.
type Scheduler struct {
	cron     *cron.Cron
	tasks    Maintenance
	schedule string
	jobID    cron.EntryID
}

// NewScheduler creates a scheduler; call Start to begin running jobs.
func NewScheduler(tasks Maintenance, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		tasks:    tasks,
		schedule: schedule,
	}
}

// Start registers the maintenance job and starts the cron loop.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(s.schedule, s.RunOnce)
	if err != nil {
		return fmt.Errorf("error scheduling maintenance job: %w", err)
	}
	s.jobID = id
	s.cron.Start()

	logger.Get().WithField("schedule", s.schedule).Info("maintenance scheduler started")
	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Get().Info("maintenance scheduler stopped")
}

// Next returns when the maintenance job runs next; zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.jobID).Next
}

// RunOnce runs every maintenance task immediately.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	// errors are logged by the tasks themselves
	_, _ = s.tasks.ReportStalePaidBills(ctx)
	_, _ = s.tasks.PurgeIdempotencyKeys(ctx)
}

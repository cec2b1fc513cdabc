package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job represents a scheduled job
type Job struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Scheduler fires its jobs once a day at a fixed wall-clock time in a
// fixed timezone.
type Scheduler struct {
	triggerHour   int
	triggerMinute int
	loc           *time.Location

	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex

	// Held while a trigger is being served. A trigger that fires while the
	// previous one is still running is dropped, not queued.
	running sync.Mutex
}

// NewScheduler creates a scheduler firing daily at triggerTime ("15:04")
// in loc.
func NewScheduler(triggerTime string, loc *time.Location) (*Scheduler, error) {
	t, err := time.Parse("15:04", triggerTime)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		triggerHour:   t.Hour(),
		triggerMinute: t.Minute(),
		loc:           loc,
		jobs:          make([]Job, 0),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Fn: fn})
	slog.Info("Cron job registered", "name", name)
}

// Start begins the daily trigger loop
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()

	slog.Info("Cron scheduler started",
		"trigger_time", time.Date(0, 1, 1, s.triggerHour, s.triggerMinute, 0, 0, time.UTC).Format("15:04"),
		"timezone", s.loc.String(),
		"job_count", len(s.jobs))
}

// Stop gracefully stops the scheduler, waiting for an in-flight trigger
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// nextTrigger returns the next instant at or after now at which the
// scheduler must fire. A trigger time already past today rolls to
// tomorrow.
func (s *Scheduler) nextTrigger(now time.Time) time.Time {
	now = now.In(s.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.triggerHour, s.triggerMinute, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Until(s.nextTrigger(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			s.trigger(s.ctx)
			timer.Reset(time.Until(s.nextTrigger(time.Now())))
		}
	}
}

// trigger runs all jobs for one firing. If the previous firing is still
// in flight this one is dropped; the jobs are idempotent per day, so a
// dropped trigger loses nothing.
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.running.TryLock() {
		slog.Warn("Cron trigger dropped, previous run still in flight")
		return
	}
	defer s.running.Unlock()

	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		start := time.Now()
		slog.Info("Cron job starting", "name", job.Name)

		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		} else {
			slog.Info("Cron job completed", "name", job.Name, "duration", time.Since(start))
		}
	}
}

// RunOnce fires all jobs immediately (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.trigger(ctx)
}

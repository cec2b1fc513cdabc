package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

const sweepConcurrency = 8

// AbsenceSweep marks every employee without an attendance record for
// today as absent. Safe to run more than once per day: employees who
// already have a record are left untouched.
type AbsenceSweep struct {
	store     attendance.Repository
	directory employee.Repository
	clk       clock.Clock
}

func NewAbsenceSweep(
	store attendance.Repository,
	directory employee.Repository,
	clk clock.Clock,
) *AbsenceSweep {
	return &AbsenceSweep{
		store:     store,
		directory: directory,
		clk:       clk,
	}
}

func (j *AbsenceSweep) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", j.Run)
}

// Run performs one sweep over a snapshot of the roster. A failure for
// one employee is logged and skipped; the sweep never aborts on it.
func (j *AbsenceSweep) Run(ctx context.Context) error {
	date := clock.DateString(j.clk.Now())

	employeeIDs, err := j.directory.ListEmployeeIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot roster: %w", err)
	}

	var marked, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, employeeID := range employeeIDs {
		g.Go(func() error {
			created, err := j.store.RecordAbsenceIfMissing(gctx, employeeID, date)
			if err != nil {
				failed.Add(1)
				slog.Error("Cron: Failed to mark employee absent",
					"employee_id", employeeID,
					"date", date,
					"error", err)
				return nil
			}
			if created {
				marked.Add(1)
			} else {
				skipped.Add(1)
			}
			return nil
		})
	}

	// Goroutines swallow their errors, Wait only flushes them.
	_ = g.Wait()

	slog.Info("Cron: Absence sweep completed",
		"date", date,
		"roster_size", len(employeeIDs),
		"marked_absent", marked.Load(),
		"already_recorded", skipped.Load(),
		"failed", failed.Load())

	return nil
}

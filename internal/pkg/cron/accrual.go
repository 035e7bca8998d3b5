package cron

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
	"github.com/nafeesnawab/payroll-backend-go/internal/repository/postgresql"
	leavesvc "github.com/nafeesnawab/payroll-backend-go/internal/service/leave"
)

// AccrualJobs wires the accrual service to the scheduler. All scheduled
// postings run in one job so their order is fixed: carry-over forfeiture
// settles last year's leftover before any of the new year's entitlement is
// granted. Each step runs in its own transaction; the period-stamped ledger
// reasons make a re-run of the same period a no-op, so the hourly interval
// is safe.
type AccrualJobs struct {
	db             *database.DB
	accrualService *leavesvc.AccrualService
}

func NewAccrualJobs(db *database.DB, accrualService *leavesvc.AccrualService) *AccrualJobs {
	return &AccrualJobs{db: db, accrualService: accrualService}
}

func (j *AccrualJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("post_scheduled_accruals", 1*time.Hour, j.PostScheduledAccruals)
}

// PostScheduledAccruals runs the year rollover and the period postings in
// strict order. In January the carry-over forfeiture must land first: it
// caps what survived from last year, and running it after a grant or a
// monthly accrual would forfeit the freshly posted entitlement.
func (j *AccrualJobs) PostScheduledAccruals(ctx context.Context) error {
	now := time.Now().UTC()

	if now.Month() == time.January {
		if err := postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
			return j.accrualService.ApplyCarryOver(postgresql.WithTx(ctx, tx), now.Year())
		}); err != nil {
			return err
		}
	}

	if err := postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
		return j.accrualService.PostUpfrontGrants(postgresql.WithTx(ctx, tx), now.Year())
	}); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
		return j.accrualService.PostMonthlyAccruals(postgresql.WithTx(ctx, tx), now)
	})
}

package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
)

type recomputeJob struct {
	userID      string
	expenseDate time.Time
}

// RecomputeQueue is an in-process queue of rollup recompute jobs. Handlers
// enqueue after every successful ledger write; a single Run loop drains the
// queue and invokes the recomputer. Failures are logged and the job dropped:
// the next write touching the same period re-derives the full totals anyway.
type RecomputeQueue struct {
	recomputer   portssvc.Recomputer
	logger       *slog.Logger
	pollInterval time.Duration

	mu     sync.Mutex
	jobs   []recomputeJob
	notify chan struct{}
}

func NewRecomputeQueue(recomputer portssvc.Recomputer, logger *slog.Logger, pollInterval time.Duration) *RecomputeQueue {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &RecomputeQueue{
		recomputer:   recomputer,
		logger:       logger,
		pollInterval: pollInterval,
		notify:       make(chan struct{}, 1),
	}
}

var _ portssvc.RecomputeScheduler = (*RecomputeQueue)(nil)

// Enqueue schedules recomputation of every rollup containing expenseDate.
// Never blocks; safe for concurrent use.
func (q *RecomputeQueue) Enqueue(userID string, expenseDate time.Time) {
	q.mu.Lock()
	q.jobs = append(q.jobs, recomputeJob{userID: userID, expenseDate: expenseDate})
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len reports the number of pending jobs.
func (q *RecomputeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

func (q *RecomputeQueue) drain() []recomputeJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := q.jobs
	q.jobs = nil
	return jobs
}

// Run processes jobs until ctx is cancelled. The idle ticker guards against
// a missed notification; it costs one empty drain per interval.
func (q *RecomputeQueue) Run(ctx context.Context) {
	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	q.logger.Info("Recompute worker started", slog.Duration("poll_interval", q.pollInterval))

	for {
		q.processPending(ctx)

		select {
		case <-ctx.Done():
			q.logger.Info("Recompute worker stopping")
			return
		case <-q.notify:
		case <-ticker.C:
		}
	}
}

func (q *RecomputeQueue) processPending(ctx context.Context) {
	for _, job := range q.drain() {
		if ctx.Err() != nil {
			return
		}
		jobLogger := q.logger.With(
			slog.String("user_id", job.userID),
			slog.Time("expense_date", job.expenseDate),
		)
		jobCtx := middleware.ContextWithLogger(ctx, jobLogger)
		if err := q.recomputer.RecomputeForExpenseDate(jobCtx, job.userID, job.expenseDate); err != nil {
			jobLogger.Error("Recompute job failed", slog.String("error", err.Error()))
			continue
		}
		jobLogger.Debug("Recompute job completed")
	}
}

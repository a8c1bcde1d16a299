package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MemoryQueue runs scan jobs on an in-process worker pool.
//
// Jobs execute on a bounded errgroup detached from the enqueueing
// request's context, so an abandoned HTTP request does not kill a running
// scan. Scans are serialized per owner: enqueueing while the owner has a
// job queued or active returns ErrOwnerBusy. The same-owner replace race
// therefore cannot happen within one process; cross-process exclusion is
// the redis backend's problem.
type MemoryQueue struct {
	runner Runner
	logger *slog.Logger
	group  *errgroup.Group

	mu       sync.Mutex
	jobs     map[string]*jobRecord
	inflight map[string]string // owner id -> job id
}

type jobRecord struct {
	payload Payload
	status  Status
}

// MemoryOption configures a MemoryQueue.
type MemoryOption func(*MemoryQueue)

// WithWorkers bounds concurrent scans. Default 4.
func WithWorkers(n int) MemoryOption {
	return func(q *MemoryQueue) { q.group.SetLimit(n) }
}

// WithQueueLogger replaces the default slog logger.
func WithQueueLogger(l *slog.Logger) MemoryOption {
	return func(q *MemoryQueue) { q.logger = l }
}

// NewMemoryQueue creates an in-process queue driving runner.
func NewMemoryQueue(runner Runner, opts ...MemoryOption) *MemoryQueue {
	q := &MemoryQueue{
		runner:   runner,
		logger:   slog.Default(),
		group:    new(errgroup.Group),
		jobs:     make(map[string]*jobRecord),
		inflight: make(map[string]string),
	}
	q.group.SetLimit(4)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue admits the job and schedules it on the worker pool.
func (q *MemoryQueue) Enqueue(_ context.Context, jobID string, payload Payload) error {
	q.mu.Lock()
	if _, exists := q.jobs[jobID]; exists {
		q.mu.Unlock()
		return fmt.Errorf("job %s already enqueued", jobID)
	}
	if inflight, busy := q.inflight[payload.OwnerID]; busy {
		q.mu.Unlock()
		return fmt.Errorf("%w (job %s)", ErrOwnerBusy, inflight)
	}
	q.jobs[jobID] = &jobRecord{payload: payload, status: Status{State: StateQueued}}
	q.inflight[payload.OwnerID] = jobID
	q.mu.Unlock()

	q.group.Go(func() error {
		q.run(jobID, payload)
		return nil
	})
	return nil
}

// run executes one job. Uses a background context: job lifetime is the
// queue's, not the enqueueing caller's.
func (q *MemoryQueue) run(jobID string, payload Payload) {
	q.setState(jobID, Status{State: StateActive})
	q.logger.Info("scan job started", "job", jobID, "owner", payload.OwnerID)

	result, err := q.runner.Run(context.Background(), payload.OwnerID)

	q.mu.Lock()
	delete(q.inflight, payload.OwnerID)
	q.mu.Unlock()

	if err != nil {
		q.setState(jobID, Status{State: StateFailed, Error: err.Error()})
		q.logger.Error("scan job failed", "job", jobID, "owner", payload.OwnerID, "error", err)
		return
	}
	q.setState(jobID, Status{State: StateCompleted, Result: &result})
	q.logger.Info("scan job completed", "job", jobID, "owner", payload.OwnerID,
		"created", result.RecommendationsCreated)
}

// Status reports the job's recorded state; unknown ids get StateUnknown.
func (q *MemoryQueue) Status(_ context.Context, jobID string) (Status, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	rec, ok := q.jobs[jobID]
	if !ok {
		return Status{State: StateUnknown}, nil
	}
	return rec.status, nil
}

// Wait blocks until every scheduled job has finished. Used by the CLI
// and tests to drain the pool before exit.
func (q *MemoryQueue) Wait() error {
	return q.group.Wait()
}

func (q *MemoryQueue) setState(jobID string, status Status) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if rec, ok := q.jobs[jobID]; ok {
		rec.status = status
	}
}

package jobs

import (
	"context"
	"fmt"
	"time"
)

// Service is the job facade: a stateless shim between callers and the
// queue. It mints job ids and proxies status; everything else is the
// queue's business.
type Service struct {
	queue Queue
	now   func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClock overrides the job-id timestamp source (tests).
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a facade over the queue.
func NewService(queue Queue, opts ...ServiceOption) *Service {
	s := &Service{queue: queue, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnqueueScan submits a scan for the owner and returns the job id.
func (s *Service) EnqueueScan(ctx context.Context, ownerID string) (string, error) {
	id := jobID(ownerID, s.now())
	if err := s.queue.Enqueue(ctx, id, Payload{OwnerID: ownerID}); err != nil {
		return "", fmt.Errorf("enqueue scan for %s: %w", ownerID, err)
	}
	return id, nil
}

// JobStatus reports the queue's view of the job. Unknown ids are a
// status, not an error.
func (s *Service) JobStatus(ctx context.Context, jobID string) (Status, error) {
	return s.queue.Status(ctx, jobID)
}

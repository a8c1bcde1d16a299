package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storelift/croscan/internal/scan"
)

// Payload is the single input of a scan job.
type Payload struct {
	OwnerID string `json:"ownerId"`
}

// State is the queue-native lifecycle of a job.
type State string

const (
	StateQueued    State = "queued"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateUnknown   State = "unknown"
)

// Status reports a job's state and, once completed, the scan result.
// Failed jobs carry the failure message instead.
type Status struct {
	State  State        `json:"state"`
	Result *scan.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Runner executes one scan. Satisfied by *scan.Scanner.
type Runner interface {
	Run(ctx context.Context, ownerID string) (scan.Result, error)
}

// Queue is the external task-queue contract. Enqueue must not block on
// job execution; Status answers for any id the queue has seen and
// StateUnknown for the rest.
type Queue interface {
	Enqueue(ctx context.Context, jobID string, payload Payload) error
	Status(ctx context.Context, jobID string) (Status, error)
}

// ErrOwnerBusy is returned by queues that serialize scans per owner when
// the owner already has one queued or active.
var ErrOwnerBusy = errors.New("jobs: owner already has a scan in flight")

// jobID builds a traceable id from the owner and enqueue time.
func jobID(ownerID string, now time.Time) string {
	return fmt.Sprintf("scan-%s-%d", ownerID, now.UnixMilli())
}

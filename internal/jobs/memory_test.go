package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelift/croscan/internal/scan"
)

// stubRunner answers with a fixed result or error and optionally blocks
// until released, so tests can hold a job in the active state.
type stubRunner struct {
	mu      sync.Mutex
	result  scan.Result
	err     error
	release chan struct{}
	owners  []string
}

func (r *stubRunner) Run(_ context.Context, ownerID string) (scan.Result, error) {
	r.mu.Lock()
	r.owners = append(r.owners, ownerID)
	release := r.release
	r.mu.Unlock()
	if release != nil {
		<-release
	}
	return r.result, r.err
}

func (r *stubRunner) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.owners...)
}

func TestMemoryQueue_CompletesJob(t *testing.T) {
	runner := &stubRunner{result: scan.Result{RecommendationsCreated: 7}}
	queue := NewMemoryQueue(runner)

	require.NoError(t, queue.Enqueue(context.Background(), "scan-shop-1", Payload{OwnerID: "shop"}))
	require.NoError(t, queue.Wait())

	status, err := queue.Status(context.Background(), "scan-shop-1")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, status.State)
	require.NotNil(t, status.Result)
	assert.Equal(t, 7, status.Result.RecommendationsCreated)
	assert.Empty(t, status.Error)
	assert.Equal(t, []string{"shop"}, runner.seen())
}

func TestMemoryQueue_FailedJobKeepsError(t *testing.T) {
	runner := &stubRunner{err: errors.New("owner lookup failed")}
	queue := NewMemoryQueue(runner)

	require.NoError(t, queue.Enqueue(context.Background(), "scan-shop-1", Payload{OwnerID: "shop"}))
	require.NoError(t, queue.Wait())

	status, err := queue.Status(context.Background(), "scan-shop-1")
	require.NoError(t, err)
	assert.Equal(t, StateFailed, status.State)
	assert.Nil(t, status.Result)
	assert.Contains(t, status.Error, "owner lookup failed")
}

func TestMemoryQueue_UnknownJobID(t *testing.T) {
	queue := NewMemoryQueue(&stubRunner{})

	status, err := queue.Status(context.Background(), "scan-ghost-0")
	require.NoError(t, err)
	assert.Equal(t, StateUnknown, status.State)
	assert.Nil(t, status.Result)
}

func TestMemoryQueue_SerializesPerOwner(t *testing.T) {
	release := make(chan struct{})
	runner := &stubRunner{release: release}
	queue := NewMemoryQueue(runner)

	require.NoError(t, queue.Enqueue(context.Background(), "scan-shop-1", Payload{OwnerID: "shop"}))

	err := queue.Enqueue(context.Background(), "scan-shop-2", Payload{OwnerID: "shop"})
	require.ErrorIs(t, err, ErrOwnerBusy)

	// A different owner is admitted while the first is still running.
	require.NoError(t, queue.Enqueue(context.Background(), "scan-other-1", Payload{OwnerID: "other"}))

	close(release)
	require.NoError(t, queue.Wait())

	// The owner is free again once its job finished.
	runner.mu.Lock()
	runner.release = nil
	runner.mu.Unlock()
	require.NoError(t, queue.Enqueue(context.Background(), "scan-shop-3", Payload{OwnerID: "shop"}))
	require.NoError(t, queue.Wait())

	status, err := queue.Status(context.Background(), "scan-shop-3")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, status.State)
}

func TestMemoryQueue_RejectsDuplicateJobID(t *testing.T) {
	queue := NewMemoryQueue(&stubRunner{})

	require.NoError(t, queue.Enqueue(context.Background(), "scan-shop-1", Payload{OwnerID: "shop"}))
	require.NoError(t, queue.Wait())

	err := queue.Enqueue(context.Background(), "scan-shop-1", Payload{OwnerID: "shop2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already enqueued")
}

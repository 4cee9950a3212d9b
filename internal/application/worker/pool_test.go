package worker_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/fiadopay-go/internal/application/worker"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
)

type noopLogger struct{}

func (n *noopLogger) Info(string, map[string]any)  {}
func (n *noopLogger) Error(string, map[string]any) {}

func TestPool_ExecutesSubmittedTasks(t *testing.T) {
	pool := worker.NewPool("test", 2, 8, &noopLogger{}, &metrics.Counters{})
	defer pool.Close()

	var ran atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			ran.Add(1)
		})
		require.NoError(t, err)
	}

	wg.Wait()

	if ran.Load() != 5 {
		t.Errorf("expected 5 tasks executed, got %d", ran.Load())
	}
}

func TestPool_RejectsWhenQueueIsFull(t *testing.T) {
	counters := &metrics.Counters{}
	pool := worker.NewPool("test", 1, 1, &noopLogger{}, counters)

	release := make(chan struct{})
	started := make(chan struct{})

	// occupy the single worker
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	// fill the queue
	require.NoError(t, pool.Submit(func() {}))

	// bounded policy: the third submission is rejected, not blocked
	err := pool.Submit(func() {})
	require.ErrorIs(t, err, worker.ErrQueueFull)
	require.Equal(t, uint64(1), counters.TasksRejected)

	close(release)
	pool.Close()
}

func TestPool_RecoversFromPanickingTask(t *testing.T) {
	pool := worker.NewPool("test", 1, 8, &noopLogger{}, &metrics.Counters{})
	defer pool.Close()

	require.NoError(t, pool.Submit(func() {
		panic("boom")
	}))

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	pool := worker.NewPool("test", 1, 1, &noopLogger{}, &metrics.Counters{})
	pool.Close()

	err := pool.Submit(func() {})
	require.ErrorIs(t, err, worker.ErrPoolClosed)
}

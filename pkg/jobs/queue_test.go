package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsJobs(t *testing.T) {
	done := make(chan string, 2)
	q := NewQueue("test", func(_ context.Context, job Job[string]) error {
		done <- job.Payload
		return nil
	}, QueueConfig{Workers: 2})

	require.Error(t, q.Enqueue("early"))

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("now"))
	require.NoError(t, q.EnqueueAfter(10*time.Millisecond, "later"))

	assert.Equal(t, "now", receive(t, done))
	assert.Equal(t, "later", receive(t, done))
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var calls atomic.Int32
	done := make(chan int, 1)
	q := NewQueue("retry", func(_ context.Context, job Job[int]) error {
		if calls.Add(1) < 3 {
			return errors.New("store unavailable")
		}
		done <- job.Attempt
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(7))

	select {
	case attempt := <-done:
		assert.Equal(t, 2, attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job never succeeded")
	}
}

func TestQueueStopDropsDelayedJobs(t *testing.T) {
	var calls atomic.Int32
	q := NewQueue("stop", func(context.Context, Job[int]) error {
		calls.Add(1)
		return nil
	}, QueueConfig{})
	q.Start(context.Background())

	require.NoError(t, q.EnqueueAfter(time.Hour, 1))
	q.Stop()

	assert.Zero(t, calls.Load())
	assert.Error(t, q.Enqueue(2))
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
		return ""
	}
}

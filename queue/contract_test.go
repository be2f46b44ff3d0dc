package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hungle45/pcqueue/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implementations returns every Queue under test. The ring capacity is kept
// small so the concurrent tests exercise backpressure as well.
func implementations() map[string]func() queue.Queue[int] {
	return map[string]func() queue.Queue[int]{
		"ring": func() queue.Queue[int] {
			return queue.MustNewRingQueue[int](8)
		},
		"growable": func() queue.Queue[int] {
			return queue.NewGrowableQueue[int](queue.WithInitialCapacity(2))
		},
	}
}

func forEachImplementation(t *testing.T, fn func(t *testing.T, newQueue func() queue.Queue[int])) {
	for name, newQueue := range implementations() {
		t.Run(name, func(t *testing.T) {
			fn(t, newQueue)
		})
	}
}

// TestQueueFIFO checks that a single producer and a single consumer observe the same order.
func TestQueueFIFO(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, newQueue func() queue.Queue[int]) {
		q := newQueue()
		const total = 1000

		go func() {
			for i := 0; i < total; i++ {
				q.Enqueue(i)
			}
		}()

		for i := 0; i < total; i++ {
			assert.Equal(t, i, q.Dequeue(), "element %d out of order", i)
		}
		assert.True(t, q.IsEmpty())
	})
}

// TestQueueSizeAndIsEmpty tests the snapshot accessors on a quiescent queue.
func TestQueueSizeAndIsEmpty(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, newQueue func() queue.Queue[int]) {
		q := newQueue()

		assert.True(t, q.IsEmpty(), "Queue should be empty initially")
		assert.Equal(t, 0, q.Size(), "Initial size should be 0")

		q.Enqueue(1)
		q.Enqueue(2)
		assert.False(t, q.IsEmpty())
		assert.Equal(t, 2, q.Size())

		assert.Equal(t, 1, q.Dequeue())
		assert.Equal(t, 1, q.Size())

		assert.Equal(t, 2, q.Dequeue())
		assert.True(t, q.IsEmpty())
		assert.Equal(t, 0, q.Size())
	})
}

// TestQueueTryDequeue tests the non-blocking dequeue.
func TestQueueTryDequeue(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, newQueue func() queue.Queue[int]) {
		q := newQueue()

		_, err := q.TryDequeue()
		assert.ErrorIs(t, err, queue.ErrQueueIsEmpty)

		require.NoError(t, q.TryEnqueue(7))
		v, err := q.TryDequeue()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})
}

// TestQueueDequeueBlocksUntilEnqueue checks that a waiting consumer returns
// exactly the element supplied after it started waiting.
func TestQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, newQueue func() queue.Queue[int]) {
		q := newQueue()
		received := make(chan int, 1)

		go func() {
			received <- q.Dequeue()
		}()

		select {
		case v := <-received:
			t.Fatalf("Dequeue returned %d from an empty queue", v)
		case <-time.After(50 * time.Millisecond):
		}

		q.Enqueue(100)

		select {
		case v := <-received:
			assert.Equal(t, 100, v)
			assert.True(t, q.IsEmpty())
		case <-time.After(500 * time.Millisecond):
			t.Fatal("Dequeue did not unblock after Enqueue")
		}
	})
}

// TestQueueNoLossNoDuplication runs several producers and consumers and checks
// every element is delivered exactly once.
func TestQueueNoLossNoDuplication(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, newQueue func() queue.Queue[int]) {
		q := newQueue()
		const (
			producers        = 4
			consumers        = 3
			itemsPerProducer = 500
			total            = producers * itemsPerProducer
		)

		var wg sync.WaitGroup
		for p := 0; p < producers; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < itemsPerProducer; i++ {
					q.Enqueue(p*itemsPerProducer + i)
				}
			}()
		}

		consumed := make(chan int, total)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var consumerWg sync.WaitGroup
		for c := 0; c < consumers; c++ {
			consumerWg.Add(1)
			go func() {
				defer consumerWg.Done()
				for {
					v, err := q.DequeueContext(ctx)
					if err != nil {
						return
					}
					consumed <- v
					if len(consumed) == total {
						cancel()
					}
				}
			}()
		}

		wg.Wait()
		consumerWg.Wait()
		close(consumed)

		seen := make(map[int]int, total)
		for v := range consumed {
			seen[v]++
		}
		require.Len(t, seen, total, "every produced element should be consumed")
		for v, n := range seen {
			assert.Equal(t, 1, n, "element %d delivered %d times", v, n)
		}
		assert.True(t, q.IsEmpty())
	})
}

// TestQueueDequeueContext tests cancellation of a waiting consumer.
func TestQueueDequeueContext(t *testing.T) {
	forEachImplementation(t, func(t *testing.T, newQueue func() queue.Queue[int]) {
		t.Run("Deadline on empty queue", func(t *testing.T) {
			q := newQueue()
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err := q.DequeueContext(ctx)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		})

		t.Run("Already cancelled context on empty queue", func(t *testing.T) {
			q := newQueue()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := q.DequeueContext(ctx)
			assert.ErrorIs(t, err, context.Canceled)
		})

		t.Run("Ready element is returned even with a cancelled context", func(t *testing.T) {
			q := newQueue()
			q.Enqueue(5)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			v, err := q.DequeueContext(ctx)
			require.NoError(t, err)
			assert.Equal(t, 5, v)
		})

		t.Run("Cancel releases a blocked consumer", func(t *testing.T) {
			q := newQueue()
			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)

			go func() {
				_, err := q.DequeueContext(ctx)
				errCh <- err
			}()

			time.Sleep(20 * time.Millisecond)
			cancel()

			select {
			case err := <-errCh:
				assert.True(t, errors.Is(err, context.Canceled))
			case <-time.After(500 * time.Millisecond):
				t.Fatal("DequeueContext ignored cancellation")
			}
		})

		t.Run("Cancelled waiter does not swallow elements", func(t *testing.T) {
			q := newQueue()
			cancelledCtx, cancel := context.WithCancel(context.Background())
			cancelledErr := make(chan error, 1)
			received := make(chan int, 1)

			go func() {
				_, err := q.DequeueContext(cancelledCtx)
				cancelledErr <- err
			}()
			go func() {
				received <- q.Dequeue()
			}()

			time.Sleep(20 * time.Millisecond)
			cancel()
			require.ErrorIs(t, <-cancelledErr, context.Canceled)

			q.Enqueue(42)

			select {
			case v := <-received:
				assert.Equal(t, 42, v)
			case <-time.After(500 * time.Millisecond):
				t.Fatal("remaining consumer was never woken")
			}
		})
	})
}

package queue

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireRingInvariants[T any](t *testing.T, rq *RingQueue[T]) {
	t.Helper()
	capacity := len(rq.items)
	require.GreaterOrEqual(t, rq.count, 0)
	require.LessOrEqual(t, rq.count, capacity)
	require.GreaterOrEqual(t, rq.head, 0)
	require.Less(t, rq.head, capacity)
	require.GreaterOrEqual(t, rq.tail, 0)
	require.Less(t, rq.tail, capacity)
	require.Equal(t, (rq.head+rq.count)%capacity, rq.tail)
}

// TestRingQueue_Invariants runs a random mix of operations against a reference slice.
func TestRingQueue_Invariants(t *testing.T) {
	rq := MustNewRingQueue[int](5)
	var model []int
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 5000; i++ {
		if rng.IntN(2) == 0 {
			err := rq.TryEnqueue(i)
			if len(model) == 5 {
				require.ErrorIs(t, err, ErrQueueIsFull)
			} else {
				require.NoError(t, err)
				model = append(model, i)
			}
		} else {
			v, err := rq.TryDequeue()
			if len(model) == 0 {
				require.ErrorIs(t, err, ErrQueueIsEmpty)
			} else {
				require.NoError(t, err)
				require.Equal(t, model[0], v)
				model = model[1:]
			}
		}
		requireRingInvariants(t, rq)
		require.Equal(t, len(model), rq.Size())
	}
}

// TestRingQueue_ReleasesSlots verifies dequeued slots do not keep references alive.
func TestRingQueue_ReleasesSlots(t *testing.T) {
	rq := MustNewRingQueue[*int](2)
	v := 1
	rq.Enqueue(&v)
	rq.Dequeue()

	for _, slot := range rq.items {
		require.Nil(t, slot)
	}
}

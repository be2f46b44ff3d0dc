package queue

import (
	"context"
	"encoding/json"
	"sync"
)

var (
	_ Bounded[int] = &RingQueue[int]{}
)

// RingQueue is a bounded FIFO queue backed by a circular buffer that is
// allocated once. Enqueue blocks while the queue is full and Dequeue blocks
// while it is empty.
type RingQueue[T any] struct {
	items []T
	head  int
	tail  int
	count int

	lock     sync.RWMutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
}

// NewRingQueue creates a RingQueue holding at most capacity elements.
// A capacity below 1 would block every call forever and is rejected with
// ErrInvalidCapacity.
func NewRingQueue[T any](capacity int) (*RingQueue[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	queue := &RingQueue[T]{
		items: make([]T, capacity),
	}
	queue.notEmpty = sync.NewCond(&queue.lock)
	queue.notFull = sync.NewCond(&queue.lock)

	return queue, nil
}

// MustNewRingQueue is like NewRingQueue but panics on an invalid capacity.
func MustNewRingQueue[T any](capacity int) *RingQueue[T] {
	queue, err := NewRingQueue[T](capacity)
	if err != nil {
		panic(err)
	}
	return queue
}

func (rq *RingQueue[T]) Enqueue(item T) {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	for rq.isFull() {
		rq.notFull.Wait()
	}

	rq.put(item)
}

func (rq *RingQueue[T]) EnqueueContext(ctx context.Context, item T) error {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	if err := waitWhile(ctx, rq.notFull, rq.isFull); err != nil {
		return err
	}

	rq.put(item)
	return nil
}

func (rq *RingQueue[T]) TryEnqueue(item T) error {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	if rq.isFull() {
		return ErrQueueIsFull
	}

	rq.put(item)
	return nil
}

func (rq *RingQueue[T]) Dequeue() T {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	for rq.isEmpty() {
		rq.notEmpty.Wait()
	}

	return rq.take()
}

func (rq *RingQueue[T]) DequeueContext(ctx context.Context) (v T, err error) {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	if err = waitWhile(ctx, rq.notEmpty, rq.isEmpty); err != nil {
		return v, err
	}

	return rq.take(), nil
}

func (rq *RingQueue[T]) TryDequeue() (v T, err error) {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	if rq.isEmpty() {
		return v, ErrQueueIsEmpty
	}

	return rq.take(), nil
}

// Peek returns the head of the queue without removing it.
func (rq *RingQueue[T]) Peek() (v T, err error) {
	rq.lock.RLock()
	defer rq.lock.RUnlock()

	if rq.isEmpty() {
		return v, ErrQueueIsEmpty
	}

	return rq.items[rq.head], nil
}

// Clear removes all elements in FIFO order and wakes every blocked producer.
func (rq *RingQueue[T]) Clear() []T {
	rq.lock.Lock()
	defer rq.lock.Unlock()

	if rq.isEmpty() {
		return nil
	}

	removed := rq.snapshot()
	clear(rq.items)
	rq.head, rq.tail, rq.count = 0, 0, 0

	rq.notFull.Broadcast()

	return removed
}

// Snapshot returns a copy of the queued elements in FIFO order.
func (rq *RingQueue[T]) Snapshot() []T {
	rq.lock.RLock()
	defer rq.lock.RUnlock()

	return rq.snapshot()
}

func (rq *RingQueue[T]) Size() int {
	rq.lock.RLock()
	defer rq.lock.RUnlock()

	return rq.count
}

func (rq *RingQueue[T]) IsEmpty() bool {
	rq.lock.RLock()
	defer rq.lock.RUnlock()

	return rq.isEmpty()
}

func (rq *RingQueue[T]) IsFull() bool {
	rq.lock.RLock()
	defer rq.lock.RUnlock()

	return rq.isFull()
}

func (rq *RingQueue[T]) Cap() int {
	return len(rq.items)
}

func (rq *RingQueue[T]) MarshalJSON() ([]byte, error) {
	rq.lock.RLock()
	defer rq.lock.RUnlock()

	if rq.isEmpty() {
		return []byte("[]"), nil
	}

	return json.Marshal(rq.snapshot())
}

func (rq *RingQueue[T]) isEmpty() bool {
	return rq.count == 0
}

func (rq *RingQueue[T]) isFull() bool {
	return rq.count == len(rq.items)
}

// put requires the write lock and a free slot.
func (rq *RingQueue[T]) put(item T) {
	rq.items[rq.tail] = item
	rq.tail = (rq.tail + 1) % len(rq.items)
	rq.count++

	rq.notEmpty.Signal()
}

// take requires the write lock and at least one element.
func (rq *RingQueue[T]) take() T {
	var zero T

	item := rq.items[rq.head]
	rq.items[rq.head] = zero
	rq.head = (rq.head + 1) % len(rq.items)
	rq.count--

	rq.notFull.Signal()

	return item
}

func (rq *RingQueue[T]) snapshot() []T {
	out := make([]T, rq.count)
	for i := range out {
		out[i] = rq.items[(rq.head+i)%len(rq.items)]
	}
	return out
}

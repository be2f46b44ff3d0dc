package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hungle45/pcqueue/log"
	"go.uber.org/zap"
)

var (
	_ Queue[int] = &GrowableQueue[int]{}
)

// GrowableQueue is an unbounded FIFO queue. Dequeue blocks while the queue is
// empty; Enqueue never blocks.
//
// When the backing store cannot grow, Enqueue drops the element, counts it in
// Dropped and logs a warning. Callers that must not lose elements use
// TryEnqueue, which reports ErrStorageExhausted, or EnqueueContext, which
// waits until a Dequeue frees room.
type GrowableQueue[T any] struct {
	items  []T
	head   int
	count  int
	minCap int
	limit  int

	logger  *zap.Logger
	dropped atomic.Uint64

	lock     sync.RWMutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
}

// NewGrowableQueue creates an empty GrowableQueue.
func NewGrowableQueue[T any](opts ...Option) *GrowableQueue[T] {
	configs := Config{
		InitialCapacity: DefaultGrowableQueueCapacity,
	}

	for _, opt := range opts {
		opt(&configs)
	}

	if configs.GrowthLimit > 0 && configs.InitialCapacity > configs.GrowthLimit {
		configs.InitialCapacity = configs.GrowthLimit
	}

	queue := &GrowableQueue[T]{
		items:  make([]T, configs.InitialCapacity),
		minCap: configs.InitialCapacity,
		limit:  configs.GrowthLimit,
		logger: configs.Logger,
	}
	queue.notEmpty = sync.NewCond(&queue.lock)
	queue.notFull = sync.NewCond(&queue.lock)

	return queue
}

func (gq *GrowableQueue[T]) Enqueue(item T) {
	gq.lock.Lock()
	err := gq.push(item)
	size := gq.count
	gq.lock.Unlock()

	if err != nil {
		gq.drop(err, size)
	}
}

func (gq *GrowableQueue[T]) EnqueueContext(ctx context.Context, item T) error {
	gq.lock.Lock()
	defer gq.lock.Unlock()

	if err := waitWhile(ctx, gq.notFull, gq.isExhausted); err != nil {
		return err
	}

	return gq.push(item)
}

func (gq *GrowableQueue[T]) TryEnqueue(item T) error {
	gq.lock.Lock()
	defer gq.lock.Unlock()

	return gq.push(item)
}

func (gq *GrowableQueue[T]) Dequeue() T {
	gq.lock.Lock()
	defer gq.lock.Unlock()

	for gq.isEmpty() {
		gq.notEmpty.Wait()
	}

	return gq.take()
}

func (gq *GrowableQueue[T]) DequeueContext(ctx context.Context) (v T, err error) {
	gq.lock.Lock()
	defer gq.lock.Unlock()

	if err = waitWhile(ctx, gq.notEmpty, gq.isEmpty); err != nil {
		return v, err
	}

	return gq.take(), nil
}

func (gq *GrowableQueue[T]) TryDequeue() (v T, err error) {
	gq.lock.Lock()
	defer gq.lock.Unlock()

	if gq.isEmpty() {
		return v, ErrQueueIsEmpty
	}

	return gq.take(), nil
}

// Peek returns the head of the queue without removing it.
func (gq *GrowableQueue[T]) Peek() (v T, err error) {
	gq.lock.RLock()
	defer gq.lock.RUnlock()

	if gq.isEmpty() {
		return v, ErrQueueIsEmpty
	}

	return gq.items[gq.head], nil
}

// Clear removes all elements in FIFO order and releases the grown storage.
func (gq *GrowableQueue[T]) Clear() []T {
	gq.lock.Lock()
	defer gq.lock.Unlock()

	if gq.isEmpty() {
		return nil
	}

	removed := gq.snapshot()
	gq.items = make([]T, gq.minCap)
	gq.head, gq.count = 0, 0

	gq.notFull.Broadcast()

	return removed
}

// Snapshot returns a copy of the queued elements in FIFO order.
func (gq *GrowableQueue[T]) Snapshot() []T {
	gq.lock.RLock()
	defer gq.lock.RUnlock()

	return gq.snapshot()
}

func (gq *GrowableQueue[T]) Size() int {
	gq.lock.RLock()
	defer gq.lock.RUnlock()

	return gq.count
}

func (gq *GrowableQueue[T]) IsEmpty() bool {
	gq.lock.RLock()
	defer gq.lock.RUnlock()

	return gq.isEmpty()
}

// Dropped returns the number of elements Enqueue has discarded so far.
func (gq *GrowableQueue[T]) Dropped() uint64 {
	return gq.dropped.Load()
}

func (gq *GrowableQueue[T]) MarshalJSON() ([]byte, error) {
	gq.lock.RLock()
	defer gq.lock.RUnlock()

	if gq.isEmpty() {
		return []byte("[]"), nil
	}

	return json.Marshal(gq.snapshot())
}

func (gq *GrowableQueue[T]) isEmpty() bool {
	return gq.count == 0
}

func (gq *GrowableQueue[T]) isExhausted() bool {
	return gq.limit > 0 && gq.count >= gq.limit
}

// push requires the write lock.
func (gq *GrowableQueue[T]) push(item T) error {
	if gq.count == len(gq.items) {
		if err := gq.grow(); err != nil {
			return err
		}
	}

	gq.items[(gq.head+gq.count)%len(gq.items)] = item
	gq.count++

	gq.notEmpty.Signal()
	return nil
}

// take requires the write lock and at least one element.
func (gq *GrowableQueue[T]) take() T {
	var zero T

	item := gq.items[gq.head]
	gq.items[gq.head] = zero
	gq.head = (gq.head + 1) % len(gq.items)
	gq.count--

	if n := len(gq.items); n > gq.minCap && gq.count <= n/4 {
		_ = gq.resize(max(n/2, gq.minCap))
	}

	gq.notFull.Signal()
	return item
}

func (gq *GrowableQueue[T]) grow() error {
	if gq.isExhausted() {
		return fmt.Errorf("%w: growth limit %d reached", ErrStorageExhausted, gq.limit)
	}

	size := max(2*len(gq.items), 1)
	if gq.limit > 0 && size > gq.limit {
		size = gq.limit
	}

	return gq.resize(size)
}

// resize moves the elements to a new store of the given size. The runtime
// rejecting the size leaves the old store in place.
func (gq *GrowableQueue[T]) resize(size int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStorageExhausted, r)
		}
	}()

	items := make([]T, size)
	n := copy(items, gq.items[gq.head:min(gq.head+gq.count, len(gq.items))])
	copy(items[n:], gq.items[:gq.count-n])

	gq.items = items
	gq.head = 0

	return nil
}

func (gq *GrowableQueue[T]) drop(err error, size int) {
	total := gq.dropped.Add(1)

	logger := gq.logger
	if logger == nil {
		logger = log.Bg()
	}

	logger.Warn("queue dropped element",
		log.Error(err),
		log.Int("size", size),
		log.Uint64("dropped_total", total),
	)
}

func (gq *GrowableQueue[T]) snapshot() []T {
	out := make([]T, gq.count)
	for i := range out {
		out[i] = gq.items[(gq.head+i)%len(gq.items)]
	}
	return out
}

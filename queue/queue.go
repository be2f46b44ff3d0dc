// Package queue provides thread-safe FIFO queues for handing elements from
// producer goroutines to consumer goroutines.
//
// RingQueue is bounded: producers block while it is full and consumers block
// while it is empty. GrowableQueue is unbounded: only consumers block.
//
// Size, IsEmpty and IsFull are snapshots. The value may be stale by the time
// the caller looks at it, so it must not be used to predict whether a later
// Enqueue or Dequeue will block.
package queue

import "context"

// Queue is the contract shared by RingQueue and GrowableQueue.
type Queue[T any] interface {
	// Enqueue adds an element to the tail of the queue. RingQueue blocks while
	// the queue is full. GrowableQueue never blocks but may drop the element.
	Enqueue(elem T)
	// EnqueueContext adds an element to the tail of the queue, waiting for room
	// until ctx is done.
	EnqueueContext(ctx context.Context, elem T) error
	// TryEnqueue adds an element without blocking. Returns an error if there is no room.
	TryEnqueue(elem T) error
	// Dequeue removes and returns the head of the queue, blocking while the queue is empty.
	Dequeue() T
	// DequeueContext removes and returns the head of the queue, waiting for an
	// element until ctx is done.
	DequeueContext(ctx context.Context) (T, error)
	// TryDequeue removes and returns the head without blocking. Returns
	// ErrQueueIsEmpty if the queue is empty.
	TryDequeue() (T, error)
	// Size returns the number of elements in the queue.
	Size() int
	// IsEmpty returns true if the queue contains no elements.
	IsEmpty() bool
}

// Bounded is a Queue with a fixed capacity.
type Bounded[T any] interface {
	Queue[T]
	// IsFull returns true if the queue holds Cap elements.
	IsFull() bool
	// Cap returns the fixed capacity of the queue.
	Cap() int
}

package queue

import "errors"

var (
	// ErrQueueIsEmpty is an error returned whenever the queue is empty and there
	// is an attempt to take an element from it without waiting.
	ErrQueueIsEmpty = errors.New("queue is empty")

	// ErrQueueIsFull is an error returned whenever the queue is full and there
	// is an attempt to add an element to it without waiting.
	ErrQueueIsFull = errors.New("queue is full")

	// ErrInvalidCapacity is returned when a bounded queue is constructed with a
	// capacity that could never hold an element.
	ErrInvalidCapacity = errors.New("queue capacity must be greater than 0")

	// ErrStorageExhausted is returned when an unbounded queue cannot grow its
	// backing store to hold one more element.
	ErrStorageExhausted = errors.New("queue storage exhausted")
)

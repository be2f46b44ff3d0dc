package driver

import (
	"fmt"
	"time"

	"github.com/hungle45/pcqueue/queue"
)

type QueueType string

const (
	QueueUnbounded QueueType = "unbounded"
	QueueBounded   QueueType = "bounded"
)

// EnqueuePolicy selects what a producer does when the unbounded queue cannot
// take an item.
type EnqueuePolicy string

const (
	// EnqueueDrop uses Enqueue: the queue drops the item, logs it and counts it
	// in Summary.Dropped.
	EnqueueDrop EnqueuePolicy = "drop"
	// EnqueueBlock uses EnqueueContext: the producer waits for room.
	EnqueueBlock EnqueuePolicy = "block"
	// EnqueueStrict uses TryEnqueue: the first refused item aborts the run.
	EnqueueStrict EnqueuePolicy = "strict"
)

const (
	DefaultProducers = 1
	DefaultConsumers = 1
	DefaultItems     = 10
	DefaultDelay     = 10 * time.Millisecond
	DefaultCapacity  = 100
)

// Options describes one producer/consumer run. Every producer emits Items
// elements and waits Delay after each enqueue; consumers wait Delay after each
// dequeue and drain the queue once every producer is done.
//
// A bounded queue never drops: with EnqueueDrop its producers wait for room
// like EnqueueBlock. An empty Policy means EnqueueDrop.
type Options struct {
	Producers   int
	Consumers   int
	Items       int
	Delay       time.Duration
	Capacity    int
	GrowthLimit int
	QueueType   QueueType
	Policy      EnqueuePolicy
}

func DefaultOptions() Options {
	return Options{
		Producers: DefaultProducers,
		Consumers: DefaultConsumers,
		Items:     DefaultItems,
		Delay:     DefaultDelay,
		Capacity:  DefaultCapacity,
		QueueType: QueueUnbounded,
		Policy:    EnqueueDrop,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Producers < 1:
		return fmt.Errorf("%w: producers must be at least 1, got %d", ErrInvalidOptions, o.Producers)
	case o.Consumers < 1:
		return fmt.Errorf("%w: consumers must be at least 1, got %d", ErrInvalidOptions, o.Consumers)
	case o.Items < 0:
		return fmt.Errorf("%w: items must not be negative, got %d", ErrInvalidOptions, o.Items)
	case o.Delay < 0:
		return fmt.Errorf("%w: delay must not be negative, got %s", ErrInvalidOptions, o.Delay)
	case o.GrowthLimit < 0:
		return fmt.Errorf("%w: growth limit must not be negative, got %d", ErrInvalidOptions, o.GrowthLimit)
	}

	switch o.Policy {
	case "", EnqueueDrop, EnqueueBlock, EnqueueStrict:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEnqueuePolicy, o.Policy)
	}

	switch o.QueueType {
	case QueueUnbounded:
	case QueueBounded:
		if o.Capacity < 1 {
			return fmt.Errorf("%w: %w, got %d", ErrInvalidOptions, queue.ErrInvalidCapacity, o.Capacity)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQueueType, o.QueueType)
	}

	return nil
}

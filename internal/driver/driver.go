package driver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hungle45/pcqueue/conc"
	"github.com/hungle45/pcqueue/log"
	"github.com/hungle45/pcqueue/queue"
	"go.uber.org/ratelimit"
)

// Summary counts what a run moved through the queue.
type Summary struct {
	Produced int    `json:"produced"`
	Consumed int    `json:"consumed"`
	Dropped  uint64 `json:"dropped"`
}

// NewQueue builds the queue selected by opts. queueOpts are passed to the
// unbounded queue only.
func NewQueue(opts Options, queueOpts ...queue.Option) (queue.Queue[Item], error) {
	switch opts.QueueType {
	case QueueBounded:
		q, err := queue.NewRingQueue[Item](opts.Capacity)
		if err != nil {
			return nil, fmt.Errorf("create bounded queue: %w", err)
		}
		return q, nil
	case QueueUnbounded:
		queueOpts = append(queueOpts, queue.WithGrowthLimit(opts.GrowthLimit))
		return queue.NewGrowableQueue[Item](queueOpts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueueType, opts.QueueType)
	}
}

// Run validates opts, builds the queue and drives it until every item has been
// consumed or ctx is done.
func Run(ctx context.Context, opts Options, reporter Reporter) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}

	q, err := NewQueue(opts)
	if err != nil {
		return Summary{}, err
	}

	return Drive(ctx, q, opts, reporter)
}

// Drive starts opts.Producers producers and opts.Consumers consumers on q and
// waits for them. Producer p emits Item{p, i + p*opts.Items} for every i below
// opts.Items. Consumers run until the producers are done and q is drained. An
// enqueue failure under EnqueueBlock or EnqueueStrict stops the run and is
// returned.
func Drive(ctx context.Context, q queue.Queue[Item], opts Options, reporter Reporter) (Summary, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	// Consumers keep dequeuing after this is cancelled until q is empty.
	drainCtx, stopConsumers := context.WithCancel(ctx)
	defer stopConsumers()

	var enqueued, consumed atomic.Int64
	droppedBefore := droppedBy(q)
	enqueue := enqueuer(q, opts.Policy)

	reporter.Started(opts.QueueType)

	producers := conc.NewGroup()
	producers.GoN(opts.Producers, func(p int) {
		pace := newPacer(opts.Delay)
		for i := 0; i < opts.Items && ctx.Err() == nil; i++ {
			item := Item{ProducerID: p, Data: i + p*opts.Items}
			reporter.Produced(p, item)

			if err := enqueue(ctx, item); err != nil {
				if ctx.Err() == nil {
					log.For(ctx).Error("enqueue failed",
						log.Int("producer", p),
						log.Error(err),
					)
					cancel(fmt.Errorf("producer %d: %w", p, err))
				}
				return
			}
			enqueued.Add(1)

			pace.Take()
		}
	})

	consumers := conc.NewGroup()
	consumers.GoN(opts.Consumers, func(c int) {
		pace := newPacer(opts.Delay)
		for ctx.Err() == nil {
			item, err := q.DequeueContext(drainCtx)
			if err != nil {
				return
			}
			consumed.Add(1)
			reporter.Consumed(c, item)

			pace.Take()
		}
	})

	producers.Wait()
	stopConsumers()
	consumers.Wait()

	dropped := droppedBy(q) - droppedBefore
	summary := Summary{
		Produced: int(enqueued.Load()) - int(dropped),
		Consumed: int(consumed.Load()),
		Dropped:  dropped,
	}

	reporter.Finished(opts.QueueType, summary)

	complete := int(enqueued.Load()) == opts.Producers*opts.Items && summary.Consumed == summary.Produced
	if err := context.Cause(ctx); err != nil && !complete {
		return summary, err
	}

	return summary, nil
}

// enqueuer maps policy to the queue operation producers call. Bounded queues
// cannot drop, so EnqueueDrop waits for room on them.
func enqueuer(q queue.Queue[Item], policy EnqueuePolicy) func(context.Context, Item) error {
	switch policy {
	case EnqueueBlock:
		return q.EnqueueContext
	case EnqueueStrict:
		return func(_ context.Context, item Item) error {
			return q.TryEnqueue(item)
		}
	}

	if _, bounded := q.(queue.Bounded[Item]); bounded {
		return q.EnqueueContext
	}

	return func(_ context.Context, item Item) error {
		q.Enqueue(item)
		return nil
	}
}

func droppedBy(q queue.Queue[Item]) uint64 {
	if d, ok := q.(interface{ Dropped() uint64 }); ok {
		return d.Dropped()
	}
	return 0
}

// newPacer returns a limiter whose every Take waits delay after the previous
// one, the first included.
func newPacer(delay time.Duration) ratelimit.Limiter {
	if delay <= 0 {
		return ratelimit.NewUnlimited()
	}
	limiter := ratelimit.New(1, ratelimit.Per(delay), ratelimit.WithoutSlack)
	limiter.Take()
	return limiter
}

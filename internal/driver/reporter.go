package driver

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reporter receives the progress of a run. Implementations must be safe for
// concurrent use; the driver calls them from every producer and consumer.
type Reporter interface {
	Started(queueType QueueType)
	Produced(producer int, item Item)
	Consumed(consumer int, item Item)
	Finished(queueType QueueType, summary Summary)
}

type consoleReporter struct {
	logger *zap.Logger
}

// NewConsoleReporter writes one line per event to w. With serialized set,
// writes are guarded by a mutex so concurrent lines never interleave, even on
// writers that are not safe for concurrent use.
func NewConsoleReporter(w io.Writer, serialized bool) Reporter {
	ws := zapcore.AddSync(w)
	if serialized {
		ws = zapcore.Lock(ws)
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
	})

	return &consoleReporter{
		logger: zap.New(zapcore.NewCore(encoder, ws, zapcore.DebugLevel)),
	}
}

func (r *consoleReporter) Started(queueType QueueType) {
	r.logger.Info("testing queue", zap.String("queue_type", string(queueType)))
}

func (r *consoleReporter) Produced(producer int, item Item) {
	r.logger.Info("produced", zap.Int("producer", producer), zap.Object("item", item))
}

func (r *consoleReporter) Consumed(consumer int, item Item) {
	r.logger.Info("consumed", zap.Int("consumer", consumer), zap.Object("item", item))
}

func (r *consoleReporter) Finished(queueType QueueType, summary Summary) {
	r.logger.Info("queue test completed",
		zap.String("queue_type", string(queueType)),
		zap.Int("produced", summary.Produced),
		zap.Int("consumed", summary.Consumed),
		zap.Uint64("dropped", summary.Dropped),
	)
}

type nopReporter struct{}

func NopReporter() Reporter {
	return nopReporter{}
}

func (nopReporter) Started(QueueType) {}
func (nopReporter) Produced(int, Item) {}
func (nopReporter) Consumed(int, Item) {}
func (nopReporter) Finished(QueueType, Summary) {}

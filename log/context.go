package log

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type loggerKey struct{}

// CtxFunc extracts request scoped fields, such as a client address, from ctx.
type CtxFunc func(ctx context.Context) []zap.Field

func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by ContextWithLogger, or nil.
func FromContext(ctx context.Context) *zap.Logger {
	logger, _ := ctx.Value(loggerKey{}).(*zap.Logger)
	return logger
}

// For returns the logger stored in ctx, or the global logger annotated with the
// trace and span ids of the span in ctx. Fields produced by ctxFuncs are added
// in both cases.
func For(ctx context.Context, ctxFuncs ...CtxFunc) *zap.Logger {
	logger := FromContext(ctx)
	if logger == nil {
		logger = Bg().With(traceFields(ctx)...)
	}

	var fields []zap.Field
	for _, fn := range ctxFuncs {
		fields = append(fields, fn(ctx)...)
	}

	return logger.With(fields...)
}

func traceFields(ctx context.Context) []zap.Field {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.Stringer("trace_id", spanCtx.TraceID()),
		zap.Stringer("span_id", spanCtx.SpanID()),
	}
}

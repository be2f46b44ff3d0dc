// Package log wraps zap with the configuration used across pcqueue: a json or
// console encoder, optional per level-range sampling and a logger carried in
// the context.
package log

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	JsonEncoderName    = "json"
	ConsoleEncoderName = "console"

	StdoutOutput = "stdout"
	StderrOutput = "stderr"
)

var DefaultEncoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	FunctionKey:    zapcore.OmitKey,
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

var encoders = map[string]func(zapcore.EncoderConfig) zapcore.Encoder{
	JsonEncoderName:    zapcore.NewJSONEncoder,
	ConsoleEncoderName: zapcore.NewConsoleEncoder,
}

// Field constructors, so callers need not import zap for the common cases.
var (
	Any      = zap.Any
	Bool     = zap.Bool
	Duration = zap.Duration
	Int      = zap.Int
	String   = zap.String
	Stringer = zap.Stringer
	Uint64   = zap.Uint64
	Error    = zap.Error
	Object   = zap.Object
	Reflect  = zap.Reflect
)

var initOnce sync.Once

// Bg returns the global logger, installing one built from DefaultConfig if
// InitLogger has not run yet.
func Bg() *zap.Logger {
	initOnce.Do(func() {
		logger, _ := newLogger(DefaultConfig)
		zap.ReplaceGlobals(logger)
	})
	return zap.L()
}

// InitLogger installs the global logger once. Later calls, and calls after Bg
// has installed the default logger, keep the logger already in place.
func InitLogger(cfg *Config) (func(), error) {
	var err error

	initOnce.Do(func() {
		var logger *zap.Logger
		if logger, err = newLogger(cfg); err == nil {
			zap.ReplaceGlobals(logger)
		}
	})

	return func() { _ = zap.L().Sync() }, err
}

// New builds a logger from cfg writing to ws, without touching the global logger.
func New(cfg *Config, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	encoder := newEncoder(cfg.Encoder)
	minLevel := cfg.minLevel()

	sampled := make([]levelRange, 0, len(cfg.Sampler))
	cores := make([]zapcore.Core, 0, len(cfg.Sampler)+1)
	for _, sc := range cfg.Sampler {
		r := sc.LevelRange.resolve(minLevel)
		sampled = append(sampled, r)
		cores = append(cores, zapcore.NewSamplerWithOptions(
			zapcore.NewCore(encoder, ws, zap.LevelEnablerFunc(r.contains)),
			sc.Interval, sc.First, sc.Thereafter,
		))
	}

	// Levels owned by a sampler never reach the plain core.
	cores = append(cores, zapcore.NewCore(encoder, ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		if lvl < minLevel {
			return false
		}
		for _, r := range sampled {
			if r.contains(lvl) {
				return false
			}
		}
		return true
	})))

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.PanicLevel)), nil
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig
	}

	ws, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	return New(cfg, ws)
}

func openOutput(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "", StderrOutput:
		return zapcore.Lock(os.Stderr), nil
	case StdoutOutput:
		return zapcore.Lock(os.Stdout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, output)
	}
}

func newEncoder(name string) zapcore.Encoder {
	build, ok := encoders[name]
	if !ok {
		build = zapcore.NewJSONEncoder
	}
	return build(DefaultEncoderConfig)
}

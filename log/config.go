package log

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is decoded by viper in cmd/pcqueue, hence the mapstructure tags.
type Config struct {
	Debug   bool            `json:"debug" mapstructure:"debug"`
	Encoder string          `json:"encoder" mapstructure:"encoder"`
	Output  string          `json:"output" mapstructure:"output"`
	Sampler []SamplerConfig `json:"sampler" mapstructure:"sampler,omitempty"`
}

// SamplerConfig throttles entries in a level range: per Interval the first
// First entries with the same message are kept, then every Thereafter-th.
type SamplerConfig struct {
	LevelRange LevelRangeConfig `json:"level_range" mapstructure:"level_range,omitempty"`
	Interval   time.Duration    `json:"interval" mapstructure:"interval"`
	First      int              `json:"first" mapstructure:"first"`
	Thereafter int              `json:"thereafter" mapstructure:"thereafter"`
}

// LevelRangeConfig is inclusive on both ends. An empty From starts at the
// minimum enabled level, an empty To ends at fatal.
type LevelRangeConfig struct {
	From LevelString `json:"from" mapstructure:"from,omitempty"`
	To   LevelString `json:"to" mapstructure:"to,omitempty"`
}

var DefaultConfig = &Config{
	Debug:   false,
	Encoder: JsonEncoderName,
	Output:  StderrOutput,
}

// Validate checks that every sampler range is ordered and that no two ranges
// share a level.
func (c *Config) Validate() error {
	ranges := make([]levelRange, 0, len(c.Sampler))
	for _, sc := range c.Sampler {
		r := sc.LevelRange.resolve(zapcore.DebugLevel)
		if r.from > r.to {
			return ErrSamplerLevelRangeInvalid
		}
		for _, other := range ranges {
			if r.overlaps(other) {
				return ErrSamplerLevelRangeOverlap
			}
		}
		ranges = append(ranges, r)
	}
	return nil
}

func (c *Config) minLevel() zapcore.Level {
	if c.Debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

type levelRange struct {
	from, to zapcore.Level
}

func (lr LevelRangeConfig) resolve(floor zapcore.Level) levelRange {
	return levelRange{
		from: lr.From.ToZapLevelOrDefault(floor),
		to:   lr.To.ToZapLevelOrDefault(zapcore.FatalLevel),
	}
}

func (r levelRange) contains(lvl zapcore.Level) bool {
	return lvl >= r.from && lvl <= r.to
}

func (r levelRange) overlaps(other levelRange) bool {
	return r.from <= other.to && other.from <= r.to
}

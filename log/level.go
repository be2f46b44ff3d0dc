package log

import "go.uber.org/zap/zapcore"

// LevelString is a level name as written in configuration files.
type LevelString string

const (
	LevelDebug  LevelString = "debug"
	LevelInfo   LevelString = "info"
	LevelWarn   LevelString = "warn"
	LevelError  LevelString = "error"
	LevelDPanic LevelString = "dpanic"
	LevelPanic  LevelString = "panic"
	LevelFatal  LevelString = "fatal"
)

func (l LevelString) ToZapLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(l.String())
}

func (l LevelString) ToZapLevelOrDefault(def zapcore.Level) zapcore.Level {
	lvl, err := l.ToZapLevel()
	if err != nil {
		return def
	}
	return lvl
}

func (l LevelString) String() string {
	return string(l)
}

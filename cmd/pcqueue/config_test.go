package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hungle45/pcqueue/internal/driver"
	"github.com/hungle45/pcqueue/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, driver.DefaultOptions(), cfg.DriverOptions())
	assert.False(t, cfg.ThreadSafeCout)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, log.ConsoleEncoderName, cfg.Log.Encoder)
	assert.Equal(t, log.StderrOutput, cfg.Log.Output)
	assert.False(t, cfg.Log.Debug)
}

func TestLoadConfigFlags(t *testing.T) {
	t.Run("Short flags", func(t *testing.T) {
		cfg, err := loadConfig([]string{"-P", "3", "-C", "2", "-N", "5", "-S", "0", "-B", "7", "-T", "bounded", "-F"}, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, driver.Options{
			Producers: 3,
			Consumers: 2,
			Items:     5,
			Delay:     0,
			Capacity:  7,
			QueueType: driver.QueueBounded,
			Policy:    driver.EnqueueDrop,
		}, cfg.DriverOptions())
		assert.True(t, cfg.ThreadSafeCout)
	})

	t.Run("Long flags", func(t *testing.T) {
		cfg, err := loadConfig([]string{
			"--producers=4", "--sleep-time=25", "--growth-limit=9", "--enqueue-policy=block",
			"--http-addr=127.0.0.1:0", "--log-debug", "--log-encoder=json",
		}, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, 4, cfg.Producers)
		assert.Equal(t, 25*time.Millisecond, cfg.DriverOptions().Delay)
		assert.Equal(t, 9, cfg.GrowthLimit)
		assert.Equal(t, driver.EnqueueBlock, cfg.DriverOptions().Policy)
		assert.Equal(t, "127.0.0.1:0", cfg.HTTPAddr)
		assert.True(t, cfg.Log.Debug)
		assert.Equal(t, log.JsonEncoderName, cfg.Log.Encoder)
	})

	t.Run("Unknown flag", func(t *testing.T) {
		_, err := loadConfig([]string{"--priority"}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("Help", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, err := loadConfig([]string{"-h"}, out)
		assert.ErrorIs(t, err, pflag.ErrHelp)
		assert.Contains(t, out.String(), "Usage: pcqueue [OPTIONS]")
		assert.Contains(t, out.String(), "--queue-capacity")
	})
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("PCQUEUE_NUM_ITEMS", "42")
	t.Setenv("PCQUEUE_QUEUE_TYPE", "bounded")
	t.Setenv("PCQUEUE_LOG_DEBUG", "true")
	t.Setenv("PCQUEUE_CONSUMERS", "6")
	t.Setenv("PCQUEUE_ENQUEUE_POLICY", "strict")

	cfg, err := loadConfig([]string{"-C", "2"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.NumItems)
	assert.Equal(t, "bounded", cfg.QueueType)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "strict", cfg.EnqueuePolicy)
	assert.Equal(t, 2, cfg.Consumers, "explicit flag beats the environment")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcqueue.yaml")
	content := []byte("producers: 5\nqueue-type: bounded\nqueue-capacity: 3\nlog:\n  encoder: json\n  output: stdout\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := loadConfig([]string{"--config", path, "-N", "8"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Producers)
	assert.Equal(t, "bounded", cfg.QueueType)
	assert.Equal(t, 3, cfg.QueueCapacity)
	assert.Equal(t, 8, cfg.NumItems)
	assert.Equal(t, log.JsonEncoderName, cfg.Log.Encoder)
	assert.Equal(t, log.StdoutOutput, cfg.Log.Output)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{})
	assert.Error(t, err)
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hungle45/pcqueue/internal/driver"
	"github.com/hungle45/pcqueue/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PCQUEUE"

type Config struct {
	Producers      int        `mapstructure:"producers"`
	Consumers      int        `mapstructure:"consumers"`
	NumItems       int        `mapstructure:"num-items"`
	SleepTimeMs    int        `mapstructure:"sleep-time"`
	QueueCapacity  int        `mapstructure:"queue-capacity"`
	QueueType      string     `mapstructure:"queue-type"`
	GrowthLimit    int        `mapstructure:"growth-limit"`
	EnqueuePolicy  string     `mapstructure:"enqueue-policy"`
	ThreadSafeCout bool       `mapstructure:"thread-safe-cout"`
	HTTPAddr       string     `mapstructure:"http-addr"`
	Log            log.Config `mapstructure:"log"`
}

func (c *Config) DriverOptions() driver.Options {
	return driver.Options{
		Producers:   c.Producers,
		Consumers:   c.Consumers,
		Items:       c.NumItems,
		Delay:       time.Duration(c.SleepTimeMs) * time.Millisecond,
		Capacity:    c.QueueCapacity,
		GrowthLimit: c.GrowthLimit,
		QueueType:   driver.QueueType(c.QueueType),
		Policy:      driver.EnqueuePolicy(c.EnqueuePolicy),
	}
}

func newFlagSet(out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pcqueue", pflag.ContinueOnError)
	fs.SetOutput(out)

	fs.IntP("producers", "P", driver.DefaultProducers, "Number of producers")
	fs.IntP("consumers", "C", driver.DefaultConsumers, "Number of consumers")
	fs.IntP("num-items", "N", driver.DefaultItems, "Number of items each producer produces")
	fs.IntP("sleep-time", "S", int(driver.DefaultDelay/time.Millisecond), "Sleep time between items in milliseconds")
	fs.IntP("queue-capacity", "B", driver.DefaultCapacity, "Queue capacity for the bounded queue")
	fs.StringP("queue-type", "T", string(driver.QueueUnbounded), "Queue type (unbounded or bounded)")
	fs.Int("growth-limit", 0, "Element limit of the unbounded queue, 0 for none")
	fs.String("enqueue-policy", string(driver.EnqueueDrop), "What producers do when the unbounded queue is exhausted (drop, block or strict)")
	fs.BoolP("thread-safe-cout", "F", false, "Serialize console output so lines from different goroutines never interleave")
	fs.String("http-addr", "", "Serve /ping, /health and /stats on this address")
	fs.String("config", "", "Path to a yaml config file")
	fs.Bool("log-debug", false, "Enable debug logs")
	fs.String("log-encoder", log.ConsoleEncoderName, "Log encoder (json or console)")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: pcqueue [OPTIONS]\nOptions:\n%s", fs.FlagUsages())
	}

	return fs
}

// loadConfig merges, from lowest to highest priority, flag defaults, the yaml
// file named by --config, PCQUEUE_* environment variables and explicit flags.
// It returns pflag.ErrHelp after printing usage for -h.
func loadConfig(args []string, out io.Writer) (*Config, error) {
	fs := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("log.output", log.StderrOutput)

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	if err := v.BindPFlag("log.debug", fs.Lookup("log-debug")); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	if err := v.BindPFlag("log.encoder", fs.Lookup("log-encoder")); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Command pcqueue runs producers and consumers over a bounded or unbounded
// queue and prints what each of them does.
//
// Usage:
//
//	pcqueue -P 2 -C 3 -N 20 -S 5 -T bounded -B 4 -F
package main

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hungle45/pcqueue/internal/driver"
	"github.com/hungle45/pcqueue/internal/probe"
	"github.com/hungle45/pcqueue/log"
	"github.com/hungle45/pcqueue/queue"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cfg, err := loadConfig(args, stdout)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Bg().Error("invalid configuration", log.Error(err))
		return 1
	}

	flush, err := log.InitLogger(&cfg.Log)
	defer flush()
	if err != nil {
		log.Bg().Error("init logger", log.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.ContextWithLogger(ctx, log.Bg())

	opts := cfg.DriverOptions()
	if err := opts.Validate(); err != nil {
		log.For(ctx).Error("invalid options", log.Error(err))
		return 1
	}

	q, err := driver.NewQueue(opts, queue.WithLogger(log.Bg().Named("queue")))
	if err != nil {
		log.For(ctx).Error("create queue", log.Error(err))
		return 1
	}

	probeDone := make(chan error, 1)
	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()
	if cfg.HTTPAddr != "" {
		ln, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			log.For(ctx).Error("listen", log.String("addr", cfg.HTTPAddr), log.Error(err))
			return 1
		}
		log.For(ctx).Info("probe listening", log.String("addr", ln.Addr().String()))

		gin.SetMode(gin.ReleaseMode)
		registry := probe.NewRegistry()
		registry.Register(string(opts.QueueType), q)
		go func() {
			probeDone <- probe.Serve(probeCtx, ln, probe.NewHandler(registry))
		}()
	} else {
		probeDone <- nil
	}

	reporter := driver.NewConsoleReporter(stdout, cfg.ThreadSafeCout)
	summary, runErr := driver.Drive(ctx, q, opts, reporter)

	stopProbe()
	if err := <-probeDone; err != nil {
		log.For(ctx).Error("probe server", log.Error(err))
	}

	if runErr != nil {
		log.For(ctx).Error("run aborted",
			log.Int("produced", summary.Produced),
			log.Int("consumed", summary.Consumed),
			log.Error(runErr),
		)
		return 1
	}

	return 0
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fincore/internal/probe"
	"github.com/okian/fincore/pkg/logger"
	_ "go.uber.org/automaxprocs"
)

func main() {
	var (
		baseURL     = flag.String("url", probe.DefaultBaseURL, "Base URL of the service")
		requests    = flag.Int("requests", probe.DefaultRequests, "Number of random user ids to score")
		workers     = flag.Int("workers", probe.DefaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", probe.DefaultTimeout, "HTTP request timeout")
		serviceName = flag.String("service", probe.DefaultServiceName, "Expected service name in GET /")
		verbose     = flag.Bool("verbose", false, "Log every failed request")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(logger.WithEncoding("console")); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := probe.Config{
		BaseURL:     *baseURL,
		Requests:    *requests,
		Workers:     *workers,
		Timeout:     *timeout,
		ServiceName: *serviceName,
		Verbose:     *verbose,
	}
	if err := run(cfg); err != nil {
		os.Exit(1)
	}
}

// run executes the probe until it finishes or a signal arrives.
func run(cfg probe.Config) error {
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := probe.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		return err
	}
	return nil
}

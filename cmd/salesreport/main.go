// Command salesreport ranks sellers by profit from dataset files.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/salesrank/internal/cli"
	"github.com/okian/salesrank/internal/config"
	"github.com/okian/salesrank/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Logs go to stderr so stdout carries only the report.
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	if err := cli.Run(ctx, cli.Env{Config: cfg, Stdout: os.Stdout}, os.Args[1:]); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

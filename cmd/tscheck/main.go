// Package main checks translation sets for integrity problems.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	entrypoint "github.com/louisbranch/fillari-i18n/internal/platform/cmd"
	"github.com/louisbranch/fillari-i18n/internal/platform/config"
	"github.com/louisbranch/fillari-i18n/internal/tools/tscheck"
)

func main() {
	var cfg tscheck.Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := tscheck.ParseConfig(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceTSCheck)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tscheck.Run(ctx, cfg, os.Stdout); err != nil {
		if errors.Is(err, tscheck.ErrCheckFailed) {
			// The report already explains the failure.
			config.ExitOnError(&config.ExitError{Code: 1})
		}
		config.ExitOnError(err)
	}
}

// Package main writes the translation completion report.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	entrypoint "github.com/louisbranch/fillari-i18n/internal/platform/cmd"
	"github.com/louisbranch/fillari-i18n/internal/platform/config"
	"github.com/louisbranch/fillari-i18n/internal/tools/i18nstatus"
)

func main() {
	var cfg i18nstatus.Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := i18nstatus.ParseConfig(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceStatus)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := i18nstatus.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}

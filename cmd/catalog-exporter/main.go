// Package main exports translation sets to other catalog formats.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	entrypoint "github.com/louisbranch/fillari-i18n/internal/platform/cmd"
	"github.com/louisbranch/fillari-i18n/internal/platform/config"
	"github.com/louisbranch/fillari-i18n/internal/tools/exporter"
)

func main() {
	var cfg exporter.Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := exporter.ParseConfig(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceExporter)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := exporter.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}

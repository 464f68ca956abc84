// Package main imports translation sets into the catalog database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	entrypoint "github.com/louisbranch/fillari-i18n/internal/platform/cmd"
	"github.com/louisbranch/fillari-i18n/internal/platform/config"
	"github.com/louisbranch/fillari-i18n/internal/tools/importer"
)

func main() {
	var cfg importer.Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := importer.ParseConfig(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceImporter)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := importer.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}

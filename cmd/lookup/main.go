// Package main starts the translation lookup HTTP service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	lookupcmd "github.com/louisbranch/fillari-i18n/internal/cmd/lookup"
	entrypoint "github.com/louisbranch/fillari-i18n/internal/platform/cmd"
)

func main() {
	cfg, err := lookupcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceLookup)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := lookupcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

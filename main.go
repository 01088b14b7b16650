package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rjw57/siteconf/cli"
	"github.com/rjw57/siteconf/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := logging.LoadLogging(); err != nil {
		log.Logger.Fatal().Err(err).Msg("failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		log.Logger.Fatal().Err(err).Msg("siteconf failed")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"docvault/internal/cli"
	"docvault/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := zerolog.Nop()
	if os.Getenv("VAULT_DEBUG") != "" {
		log = logging.New(os.Stderr, nil).Level(zerolog.DebugLevel)
	}

	app := cli.NewApp(cli.LoadConfig(), os.Stdin, os.Stdout, log)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

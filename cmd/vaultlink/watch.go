package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/littlekj/vaultlink/internal/core"
)

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	vault := fs.String("vault", ".", "vault root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return core.Watch(ctx, *vault, nil)
}

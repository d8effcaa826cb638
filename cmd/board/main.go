package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kanban/internal/board"
	"kanban/internal/cli"
	"kanban/internal/client"
	"kanban/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(cli.ExitUserError)
	}
	api := client.New(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})

	factory := func(ctx context.Context) (*board.Board, error) {
		b := board.New(api)
		if err := b.Load(ctx); err != nil {
			b.Close()
			return nil, err
		}
		return b, nil
	}

	code := cli.NewDispatcher(cli.DefaultRegistry, factory).Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"kanban/internal/app"
	"kanban/internal/config"
	"kanban/internal/logger"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

func main() {
	configPath := flag.String("config", "", "путь к config.yml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		logger.Error("App: Ошибка инициализации", err)
		_ = application.Shutdown(ctx)
		os.Exit(1)
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Error("App: Сервер остановлен с ошибкой", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		ctx,
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"kanban-api": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				return application.Shutdown(ctx)
			},
		},
	)

	exitCode := <-wait
	os.Exit(exitCode)
}

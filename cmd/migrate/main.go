package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/cleanmart/backend/pkg/config"
	"github.com/cleanmart/backend/pkg/db"
	"github.com/cleanmart/backend/pkg/logger"
	"github.com/cleanmart/backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "cleanmart-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "migrate.connect_failed", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		logg.Error(ctx, "migrate.handle_failed", err)
		os.Exit(1)
	}

	var extra []string
	if flag.NArg() > 1 {
		extra = flag.Args()[1:]
	}

	ctx = logg.WithFields(ctx, map[string]any{"command": command, "dir": *dir})
	logg.Info(ctx, "migrate.start")

	if err := migrate.Run(ctx, sqlDB, *dir, command, extra...); err != nil {
		logg.Error(ctx, "migrate.failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "migrate.done")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/avoronov/secdash/internal/buildinfo"
	"github.com/avoronov/secdash/internal/client/config"
	"github.com/avoronov/secdash/internal/logging"
	"github.com/avoronov/secdash/internal/terminal"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := terminal.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

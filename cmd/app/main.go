package main

import (
	"log"
	"log/slog"
	"os"

	"script-shelf/internal/bootstrap"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("SCRIPT_SHELF_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app, err := bootstrap.New()
	if err != nil {
		log.Fatalf("bootstrap app: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

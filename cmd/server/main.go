package main

import (
	"log/slog"
	"os"

	"github.com/Kirill555dg/NotesApp/internal/server/app"
)

var version = "2.0.0"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	application, err := app.New(version, logger)
	if err != nil {
		logger.Error("failed to init server", "err", err)
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kirill555dg/NotesApp/internal/server/config"
	"github.com/Kirill555dg/NotesApp/internal/server/httpapi"
	"github.com/Kirill555dg/NotesApp/internal/server/repository/sqlite"
	"github.com/Kirill555dg/NotesApp/internal/server/service"
)

type App struct {
	version   string
	logger    *slog.Logger
	server    *http.Server
	repoClose io.Closer
}

func New(version string, logger *slog.Logger) (*App, error) {
	cfg := config.Load()
	repo, err := sqlite.New(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	services := service.NewServices(repo, cfg)
	router := httpapi.NewRouter(services, logger, version)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &App{version: version, logger: logger, server: server, repoClose: repo}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() { _ = a.repoClose.Close() }()

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("http server error", "err", err)
		}
	}()

	a.logger.Info("notes server listening", "version", a.version, "addr", a.server.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

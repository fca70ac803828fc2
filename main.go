package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/bookreview/auth"
	"github.com/danielhkuo/bookreview/cliparse"
	"github.com/danielhkuo/bookreview/db"
	"github.com/danielhkuo/bookreview/logging"
	"github.com/danielhkuo/bookreview/router"
	"github.com/danielhkuo/bookreview/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := cliparse.LoadDotEnv(); err != nil {
		return err
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	slog.SetDefault(logging.New(logging.Config{
		Writer: os.Stderr,
		Format: cfg.LogFormat,
		Level:  logging.ParseLevel(cfg.LogLevel),
	}))

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return err
	}

	// Connect and verify
	conn, err := db.Open(context.Background(), dialect, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.Migrate(conn, dialect); err != nil {
		return err
	}
	version, err := db.Version(conn, dialect)
	if err != nil {
		return err
	}
	slog.Info("database ready", "dialect", dialect, "schema_version", version)

	tokens, err := auth.NewTokenService(cfg.TokenKey, cfg.TokenTTL)
	if err != nil {
		return err
	}

	rt := router.NewRouter(store.New(conn, dialect), tokens, cfg)
	defer rt.Close()

	server := &http.Server{
		Handler:           rt,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Listening", "port", cfg.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("Server closed")
	return nil
}

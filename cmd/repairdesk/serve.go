package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/repairdesk/internal/config"
	"github.com/rpggio/repairdesk/internal/mcp"
	"github.com/rpggio/repairdesk/internal/transport"
	"github.com/rpggio/repairdesk/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API with MCP mounted at /mcp",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.logger

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Backend == config.BackendJSON && cfg.Store.Watch {
		watcher, err := watch.New(cfg.Store.Path, a.cases.InvalidateCache, logger)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("store watcher disabled", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Cases:    a.cases,
		Activity: a.activity,
		Version:  version,
		Logger:   logger,
	})
	router := transport.NewServer(transport.Config{
		Cases:    a.cases,
		Activity: a.activity,
		PDFPath:  cfg.PDF.Path,
		MCP:      mcp.NewHTTPHandler(mcpServer),
		Logger:   logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "backend", cfg.Store.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

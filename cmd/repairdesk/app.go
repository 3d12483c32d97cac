package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/repairdesk/internal/config"
	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/jsonstore"
	"github.com/rpggio/repairdesk/internal/sqlite"
)

// app holds the wired services shared by the commands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	store    record.Store
	cases    *repaircase.Service
	activity *activity.Service
	logFile  *os.File
}

// newApp opens the database and store selected by cfg. Logs go to logWriter
// unless a log file is configured.
func newApp(cfg config.Config, logWriter io.Writer) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.logFile = file
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDir(cfg.DB.Path); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		a.close()
		return nil, err
	}
	a.db = db

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		a.store = sqlite.NewRecordStore(db)
	default:
		a.store = jsonstore.New(cfg.Store.Path)
	}

	activityRepo := sqlite.NewActivityRepository(db)
	a.activity = activity.NewService(activityRepo, a.logger)
	a.cases = repaircase.NewService(a.store, activityRepo, a.logger)

	a.logger.Debug("app initialized", "backend", cfg.Store.Backend, "db", cfg.DB.Path)
	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("closing database failed", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

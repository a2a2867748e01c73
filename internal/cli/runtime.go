package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pstoolkit/internal/activity"
	"github.com/dmitrijs2005/pstoolkit/internal/config"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/dmitrijs2005/pstoolkit/internal/filex"
	"github.com/dmitrijs2005/pstoolkit/internal/logging"
	"github.com/dmitrijs2005/pstoolkit/internal/storage"
)

// Runtime holds the process-wide resources, built once at startup and passed
// to everything that needs them.
type Runtime struct {
	DB       *sql.DB
	Cipher   *cryptox.Service
	Activity *activity.Log
	Logger   logging.Logger

	closers []io.Closer
}

// OpenRuntime opens the diagnostic log, the key file and the store described
// by cfg. Any failure here is fatal for the process.
func OpenRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{Activity: activity.New(cfg.ActivityLogPath)}

	logger, err := rt.openDiagnostics(cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Logger = logger

	key, err := cryptox.LoadOrCreateKey(cfg.KeyPath)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("key file %s: %w", cfg.KeyPath, err)
	}
	rt.Cipher, err = cryptox.NewService(key)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.DB = db
	rt.closers = append(rt.closers, db)

	rt.Logger.Info(ctx, "runtime ready", "db", cfg.DBPath, "key", cfg.KeyPath, "activity", rt.Activity.Path())
	return rt, nil
}

func (rt *Runtime) openDiagnostics(cfg *config.Config) (logging.Logger, error) {
	var w io.Writer = os.Stderr
	if cfg.DiagnosticLogPath != "-" && cfg.DiagnosticLogPath != "" {
		if err := filex.EnsureParentDir(cfg.DiagnosticLogPath); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.DiagnosticLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open diagnostic log: %w", err)
		}
		rt.closers = append(rt.closers, f)
		w = f
	}
	return logging.NewTextLogger(w, cfg.LogLevel)
}

// Close releases everything in reverse order of opening.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

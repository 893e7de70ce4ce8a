package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/progress"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

// newLogger builds the process logger. Interactive sessions log to the
// --log-file because the game owns the terminal; other commands use stderr.
// The returned close func is never nil.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}

	if interactive {
		path, err := storage.ExpandPath(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() } //nolint:errcheck // best-effort
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanerunner",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStores opens the database and the progress store backed by it.
// When the database cannot be opened the returned *storage.Store is nil and
// progress lives in memory, unless --progress-file names a JSON file.
func openStores(logger *log.Logger) (*storage.Store, *progress.Store) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, run history will not be saved", "path", flagDBPath, "error", err)
		return nil, progress.Open(progressFileBackend(logger), logger)
	}
	return openStoresWith(db, logger)
}

func openStoresWith(db *storage.Store, logger *log.Logger) (*storage.Store, *progress.Store) {
	if backend := progressFileBackend(logger); backend != nil {
		return db, progress.Open(backend, logger)
	}
	return db, progress.Open(db.ProgressBackend(storage.ProgressKey), logger)
}

// progressFileBackend returns the --progress-file backend, or nil.
func progressFileBackend(logger *log.Logger) progress.Backend {
	if flagProgress == "" {
		return nil
	}
	path, err := storage.ExpandPath(flagProgress)
	if err != nil {
		logger.Warn("ignoring --progress-file", "error", err)
		return nil
	}
	return progress.FileBackend{Path: path}
}

// mustOpenDB opens the database or exits.
func mustOpenDB() *storage.Store {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return db
}

// mustLogger builds a stderr logger or exits.
func mustLogger() *log.Logger {
	logger, _, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger
}

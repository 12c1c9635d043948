package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/hanzidrill/internal/app"
	"github.com/abhisek/hanzidrill/internal/config"
	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/fetch"
	"github.com/abhisek/hanzidrill/internal/grammarcheck"
	"github.com/abhisek/hanzidrill/internal/llm"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/screens/home"
	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/spf13/cobra"
)

// env holds everything a command needs, built from config and flags.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store // nil when the database could not be opened
	catalog dataset.Catalog
	fetcher *fetch.Fetcher
	checker *grammarcheck.Service

	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

// deps returns what the screens share.
func (e *env) deps() home.Deps {
	d := home.Deps{
		Catalog: e.catalog,
		Source:  e.fetcher,
		Checker: e.checker,
		Logger:  e.logger,
	}
	if e.store != nil {
		d.Submissions = e.store.SubmissionRepo()
	}
	return d
}

// setupEnv loads config, logging, storage, the dataset source and the
// sentence checker. With tui set, logs go to a file and a database that
// cannot be opened is reported instead of failing.
func setupEnv(cmd *cobra.Command, tui bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	dbPath, dbErr := resolveDBPath(cmd, cfg)

	var logOut io.Writer = os.Stderr
	if tui {
		logPath := cfg.Log.File
		if logPath == "" && dbErr == nil {
			logPath = filepath.Join(filepath.Dir(dbPath), "hanzidrill.log")
		}
		logOut = io.Discard
		if logPath != "" {
			if f, err := app.OpenLogFile(logPath); err == nil {
				e.closers = append(e.closers, f)
				logOut = f
			}
		}
	}
	e.logger = app.NewLogger(cfg.Log, logOut)

	if dbErr == nil {
		e.store, dbErr = store.Open(dbPath)
	}
	if dbErr != nil {
		if !tui {
			e.Close()
			return nil, fmt.Errorf("open store: %w", dbErr)
		}
		e.logger.Warn("submissions will not be saved", "error", dbErr)
	} else {
		e.closers = append(e.closers, e.store)
	}

	e.catalog = dataset.DefaultCatalog()
	if cfg.Data.Catalog != "" {
		if e.catalog, err = dataset.LoadCatalog(cfg.Data.Catalog); err != nil {
			e.Close()
			return nil, err
		}
	}

	e.fetcher = fetch.New(cfg.Data.BaseDir, cfg.Data.BaseURL, cfg.Data.Timeout)
	e.fetcher.Logger = e.logger

	e.checker = newChecker(cmd.Context(), e, tui)
	return e, nil
}

// newChecker builds the sentence checker. Without a usable provider it
// checks locally.
func newChecker(ctx context.Context, e *env, tui bool) *grammarcheck.Service {
	checkCfg := grammarcheck.DefaultConfig()
	if e.cfg.Check.Timeout > 0 {
		checkCfg.Timeout = e.cfg.Check.Timeout
	}
	if !e.cfg.Check.Enabled {
		return grammarcheck.New(nil, checkCfg, e.logger)
	}

	var events store.LLMEventRepo
	if e.store != nil {
		events = e.store.EventRepo()
	}
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, events, e.logger)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		e.logger.Info("no LLM provider configured, checking sentences locally")
	case err != nil:
		if !tui {
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
			fmt.Fprintln(os.Stderr, "Sentences will be checked locally.")
		}
		e.logger.Warn("LLM provider unavailable", "error", err)
	}
	return grammarcheck.New(provider, checkCfg, e.logger)
}

// tuiStart selects the first screen.
type tuiStart struct {
	skipSplash bool
}

// runTUI builds dependencies and launches the TUI.
func runTUI(cmd *cobra.Command, start tuiStart) error {
	e, err := setupEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Deps:       e.deps(),
		SkipSplash: start.skipSplash,
	})
}

// runWith launches the TUI on first over an already built env.
func runWith(e *env, first screen.Screen) error {
	return app.Run(app.Options{
		Deps:  e.deps(),
		Start: func(home.Deps) screen.Screen { return first },
	})
}

// findEntry looks name up in the catalog. An unknown name that looks like
// a file path or URL becomes an ad-hoc entry with an inferred kind.
func findEntry(catalog dataset.Catalog, name string) (dataset.Entry, error) {
	if e, ok := catalog.Find(name); ok {
		return e, nil
	}
	if filepath.Ext(name) != "" {
		return dataset.Entry{Name: filepath.Base(name), Path: name, Kind: dataset.InferKind(name)}, nil
	}
	return dataset.Entry{}, fmt.Errorf("dataset %q is not in the catalog", name)
}

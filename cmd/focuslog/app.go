package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/config"
	"github.com/sandeepkv93/focuslog/internal/focus"
	"github.com/sandeepkv93/focuslog/internal/storage"
	"github.com/sandeepkv93/focuslog/internal/tracker"
)

type app struct {
	cfg     config.RuntimeConfig
	logger  *slog.Logger
	store   *storage.SQLiteStore
	tracker *tracker.Tracker
	report  tracker.DayReport
}

func (a *app) Close() error {
	return a.store.Close()
}

func loadConfig(opts *rootOptions) (config.RuntimeConfig, error) {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	if v := strings.TrimSpace(opts.dbPath); v != "" {
		cfg.DBPath = v
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openApp opens the store and loads the tracker. ticks may be nil for
// commands that never run the timer.
func openApp(ctx context.Context, cfg config.RuntimeConfig, logger *slog.Logger, ticks focus.TickSource) (*app, error) {
	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	tr, report, err := tracker.Open(ctx, tracker.Options{
		Store:        store,
		Logger:       logger,
		Habits:       cfg.Habits,
		Moods:        cfg.Moods,
		FocusMinutes: cfg.FocusMinutes,
		Ticks:        ticks,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load tracker: %w", err)
	}
	if report.Crossed {
		logger.Info("day boundary crossed",
			slog.String("previous", report.Previous),
			slog.Bool("had_activity", report.HadActivity),
			slog.Int("streak", report.Streak),
		)
	}
	return &app{cfg: cfg, logger: logger, store: store, tracker: tr, report: report}, nil
}

// withApp runs fn against a freshly opened app using stderr logging.
func withApp(ctx context.Context, opts *rootOptions, stderr io.Writer, fn func(*app) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, newLogger(stderr, opts.verbose), nil)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

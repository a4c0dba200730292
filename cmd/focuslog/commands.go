package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/focuslog/internal/config"
	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/focus"
	"github.com/sandeepkv93/focuslog/internal/scheduler"
	"github.com/sandeepkv93/focuslog/internal/update"
	"github.com/sandeepkv93/focuslog/internal/views"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
				return fmt.Errorf("create log dir: %w", err)
			}
			logFile, err := tea.LogToFile(cfg.LogPath, "focuslog")
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()
			logger := newLogger(logFile, opts.verbose)

			ticks := &focus.RealTicks{}
			a, err := openApp(cmd.Context(), cfg, logger, ticks)
			if err != nil {
				return err
			}
			defer a.Close()

			engine := scheduler.NewEngine(cfg.NudgeBuffer)
			engine.Start()
			defer engine.Stop()

			var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
			if cfg.DesktopNotifications {
				notifier = update.ExecDesktopNotifier{}
			}
			model := update.NewModel(a.tracker, update.Options{
				Context:              cmd.Context(),
				Logger:               logger,
				Scheduler:            engine,
				Notifier:             notifier,
				DesktopNotifications: cfg.DesktopNotifications,
				SeriesDays:           cfg.SeriesDays,
				TagLimit:             cfg.TagLimit,
				NudgeHour:            cfg.NudgeHour,
				DayReport:            a.report,
			})
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			ticks.Dispatch = update.TickDispatcher(program)
			defer ticks.Stop()

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("focuslog tui: %w", err)
			}
			if dropped := engine.Dropped(); dropped > 0 {
				logger.Warn("nudges dropped", "count", dropped)
			}
			return nil
		},
	}
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var minutes int
	var title, tags, date string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a focus session without running the timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date != "" && !dates.IsISO(date) {
				return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
			}
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				_, msg, err := a.tracker.LogManual(cmd.Context(), date, minutes, title, tags)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "session length in minutes")
	cmd.Flags().StringVarP(&title, "title", "t", "", "session title")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newHabitCmd(opts *rootOptions) *cobra.Command {
	habit := &cobra.Command{Use: "habit", Short: "Check off or reset habits"}

	habit.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show today's habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				today := a.tracker.Today()
				done := a.tracker.HabitsFor(today)
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "habits for %s\n", dates.Display(today))
				for _, h := range a.tracker.HabitSet() {
					box := "[ ]"
					if done[h] {
						box = "[x]"
					}
					_, _ = fmt.Fprintf(out, "%s %s\n", box, h)
				}
				return nil
			})
		},
	})
	habit.AddCommand(&cobra.Command{
		Use:   "toggle <key>",
		Short: "Flip a habit for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				_, msg, err := a.tracker.ToggleHabit(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	})
	habit.AddCommand(&cobra.Command{
		Use:   "reset <key>",
		Short: "Uncheck a habit for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				msg, err := a.tracker.SetHabit(cmd.Context(), args[0], false)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	})
	habit.AddCommand(&cobra.Command{
		Use:   "clear [date]",
		Short: "Clear every habit for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				date := a.tracker.Today()
				if len(args) == 1 {
					if !dates.IsISO(args[0]) {
						return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
					}
					date = args[0]
				}
				msg, err := a.tracker.ResetHabits(cmd.Context(), date)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	})
	return habit
}

func newMoodCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mood <mood> [reflection...]",
		Short: "Save today's mood and an optional reflection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				_, msg, err := a.tracker.SaveMood(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print totals, level, streak and charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				if days <= 0 {
					days = a.cfg.SeriesDays
				}
				data := views.NewStatsPanelData(a.tracker.Summary(), a.tracker.DailySeries(days), a.tracker.TagTotals(a.cfg.TagLimit))
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.RenderStatsPanel(data))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "days in the daily chart (default from config)")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	var toStdout bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every session as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, cmd.ErrOrStderr(), func(a *app) error {
				if toStdout {
					_, err := a.tracker.ExportCSV(cmd.OutOrStdout())
					return err
				}
				path, n, err := a.tracker.ExportFile(out)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d session(s) to %s\n", n, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default focus-sessions-<today>.csv)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write CSV to stdout instead of a file")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect or create the config file"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultRuntimeConfig().Save(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}

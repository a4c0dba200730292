package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focuslog/internal/focus"
)

// newTickSource builds the tick source for the headless timer; tests swap it
// for a faster one.
var newTickSource = func(dispatch func(tick func())) focus.TickSource {
	return &focus.RealTicks{Dispatch: dispatch}
}

func newTimerCmd(opts *rootOptions) *cobra.Command {
	var minutes int
	var title, tags string

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a focus countdown in the terminal and log it when it finishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if minutes > 0 {
				cfg.FocusMinutes = minutes
			}

			pending := make(chan func(), 1)
			ticks := newTickSource(func(tick func()) {
				select {
				case pending <- tick:
				default:
				}
			})
			a, err := openApp(ctx, cfg, newLogger(cmd.ErrOrStderr(), opts.verbose), ticks)
			if err != nil {
				return err
			}
			defer a.Close()

			return runTimer(ctx, a, pending, title, tags, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "countdown length (default from config)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "session title")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	return cmd
}

// runTimer drives the countdown on the calling goroutine. Ticks arrive on
// pending; an interrupt stops the timer without logging.
func runTimer(ctx context.Context, a *app, pending <-chan func(), title, tags string, out io.Writer) error {
	timer := a.tracker.Timer()
	timer.Start()
	defer timer.Pause()
	_, _ = fmt.Fprintf(out, "focus: %d minute(s), ctrl+c to stop\n", timer.Minutes())

	for {
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintf(out, "\nstopped with %s left, nothing logged\n", clock(timer.RemainingSec()))
			return nil
		case tick := <-pending:
			tick()
			if timer.RemainingSec()%60 == 0 || timer.Done() {
				_, _ = fmt.Fprintf(out, "%s left\n", clock(timer.RemainingSec()))
			}
			if !timer.Done() {
				continue
			}
			notice, err := a.tracker.TakeNotice()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, notice)
			_, msg, err := a.tracker.LogSession(ctx, title, tags)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			_, _ = fmt.Fprintln(out, msg)
			return nil
		}
	}
}

func clock(sec int) string {
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenday/screenday/internal/aggregate"
	"github.com/screenday/screenday/internal/pipeline"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Interval time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live \"today so far\" summary",
		Long: `Poll the event log for today's events and print the device summary
every time it changes. Nothing is persisted; the same aggregation the
daily pipeline uses runs over each complete event snapshot.

Example:
  screenday watch --db ./screenday.db --interval 5s`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", 5*time.Second, "poll interval")

	return cmd
}

func runWatch(parentCtx context.Context, opts *WatchOptions, cmd *cobra.Command) error {
	st, cfg, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	projector := pipeline.NewProjector(st, cfg)
	go func() {
		if err := projector.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("projector stopped", "error", err)
			cancel()
		}
	}()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var lastSeq int64 = -1
	for {
		select {
		case <-ctx.Done():
			return nil
		case summary := <-projector.Summaries():
			if err := printSummary(out, summary); err != nil {
				return WrapExitError(ExitFailure, "failed to write summary", err)
			}
		case <-ticker.C:
			seq, err := st.LatestEventSeq(ctx)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to poll event log", err)
			}
			if seq == lastSeq {
				continue
			}
			lastSeq = seq

			date, start, end := pipeline.LocalDayBounds(time.Now())
			events, err := st.EventsBetween(ctx, start, end)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to fetch events", err)
			}
			projector.Submit(pipeline.Snapshot{Date: date, Events: events})
		}
	}
}

func printSummary(out *OutputFormatter, summary aggregate.DeviceSummary) error {
	if out.Format == "json" {
		return out.JSON(summary)
	}
	out.Textf("%s  %s  usage %s  unlocks %d  opens %d  notifications %d\n",
		time.Now().Format("15:04:05"),
		summary.Date,
		formatMillis(summary.TotalUsageTime),
		summary.UnlockCount,
		summary.AppOpens,
		summary.NotificationCount,
	)
	return nil
}
